package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/wavescope/dsp/filter/butter"
)

// ParseFilter parses the compact filter syntax shared by the CLI and the
// dashboard: "lowpass:4000", "highpass:150" or "bandpass:300-3400",
// frequencies in Hz. Empty input means no filter.
func ParseFilter(s string) (*FilterSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	kindName, arg, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("filter must look like kind:frequency: %q", s)
	}

	kind, err := butter.ParseKind(kindName)
	if err != nil {
		return nil, err
	}

	spec := &FilterSpec{Kind: kind}
	switch kind {
	case butter.KindBandpass:
		loStr, hiStr, ok := strings.Cut(arg, "-")
		if !ok {
			return nil, fmt.Errorf("bandpass needs a low-high range: %q", arg)
		}
		lo, err := parseHz(loStr)
		if err != nil {
			return nil, err
		}
		hi, err := parseHz(hiStr)
		if err != nil {
			return nil, err
		}
		if lo >= hi {
			return nil, fmt.Errorf("bandpass range must ascend: %g-%g", lo, hi)
		}
		spec.Low, spec.High = lo, hi
	case butter.KindHighpass:
		f, err := parseHz(arg)
		if err != nil {
			return nil, err
		}
		spec.Low = f
	default:
		f, err := parseHz(arg)
		if err != nil {
			return nil, err
		}
		spec.High = f
	}

	return spec, nil
}

// String renders the filter in the syntax ParseFilter accepts.
func (f *FilterSpec) String() string {
	if f == nil {
		return ""
	}

	switch f.Kind {
	case butter.KindBandpass:
		return fmt.Sprintf("bandpass:%g-%g", f.Low, f.High)
	case butter.KindHighpass:
		return fmt.Sprintf("highpass:%g", f.Low)
	default:
		return fmt.Sprintf("lowpass:%g", f.High)
	}
}

func parseHz(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad frequency %q", s)
	}
	if f <= 0 {
		return 0, fmt.Errorf("frequency must be > 0: %g", f)
	}

	return f, nil
}
