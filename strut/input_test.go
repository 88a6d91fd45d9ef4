package strut

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestReadPath(t *testing.T) {
	const src = `# strut 1
0 0 0
1 2.5 -3

  4e-1 5 6
`
	got, err := ReadPath(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []r3.Vec{{}, {X: 1, Y: 2.5, Z: -3}, {X: 0.4, Y: 5, Z: 6}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadPath mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPathErrors(t *testing.T) {
	for _, test := range []struct {
		src  string
		want string
	}{
		{src: "0 0 0\n1 2\n", want: "line 2"},
		{src: "0 0 0 0\n", want: "line 1"},
		{src: "0 0 0\n0 x 0\n", want: "line 2"},
		{src: "NaN 0 0\n", want: "non-finite"},
		{src: "0 +Inf 0\n", want: "non-finite"},
	} {
		_, err := ReadPath(strings.NewReader(test.src))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("ReadPath(%q) error %v, want mention of %q", test.src, err, test.want)
		}
	}
	_, err := ReadPath(strings.NewReader("\n# only comments\n"))
	if !errors.Is(err, ErrNoPoints) {
		t.Errorf("want ErrNoPoints, got %v", err)
	}
}

func TestReadDimensions(t *testing.T) {
	got, err := ReadDimensions(strings.NewReader("0.2\n0.35 extra fields\n\n1e-1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0.2, 0.35, 0.1}, got); diff != "" {
		t.Errorf("ReadDimensions mismatch (-want +got):\n%s", diff)
	}
	if _, err := ReadDimensions(strings.NewReader("0.2\nabc\n")); err == nil {
		t.Error("expected parse error")
	}
}
