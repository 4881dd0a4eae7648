/*
Package goes reads GOES-R series ABI L1b radiance granules (netCDF).

Unlike HSD, the granule is self-describing: the Rad variable carries its
own scale/offset and the two Planck terms are stored pre-combined, so the
record exposes exactly the fields the direct brightness-temperature formula
needs.
*/
package goes

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Bits is the ABI L1b sample depth.
const Bits = 14

// ErrMalformed is returned when a granule lacks the variables or
// attributes the conversion needs.
var ErrMalformed = errors.New("goes: malformed granule")

// Record holds one decoded ABI L1b radiance granule.
type Record struct {
	X, Y int // raster dimensions
	Band int // ABI channel, parsed from the file name

	ScaleFactor float64
	AddOffset   float64
	PlanckFk1   float64
	PlanckFk2   float64
	PlanckBc1   float64
	PlanckBc2   float64

	Data []int16   // raw counts, row-major; negative values are fill
	Temp []float64 // brightness temperature (K), set by calibration
}

// Counts returns the raw samples as unsigned counts for grayscale
// rendering; fill values clamp to zero.
func (r *Record) Counts() []uint16 {
	out := make([]uint16, len(r.Data))
	for i, v := range r.Data {
		if v > 0 {
			out[i] = uint16(v)
		}
	}
	return out
}

// Granule names look like OR_ABI-L1b-RadM1-M6C13_G16_s2019244....nc where
// C13 is the channel.
var bandToken = regexp.MustCompile(`C(\d{2})_`)

// BandFromName parses the ABI channel out of a granule file name,
// returning 0 when the name carries no channel token.
func BandFromName(path string) int {
	m := bandToken.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0
	}
	band, _ := strconv.Atoi(m[1])
	return band
}

// Read decodes the granule at path.
func Read(path string) (*Record, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer nc.Close()

	rec := &Record{Band: BandFromName(path)}

	if rec.X, err = dimLen(nc, "x"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if rec.Y, err = dimLen(nc, "y"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rad, err := nc.GetVariable("Rad")
	if err != nil {
		return nil, fmt.Errorf("%s: %w: no Rad variable: %v", path, ErrMalformed, err)
	}
	if rec.Data, err = flattenCounts(rad.Values); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rec.Data) != rec.X*rec.Y {
		return nil, fmt.Errorf("%w: %d samples for a %dx%d raster", ErrMalformed, len(rec.Data), rec.X, rec.Y)
	}

	if rec.ScaleFactor, err = attrFloat(rad, "scale_factor"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if rec.AddOffset, err = attrFloat(rad, "add_offset"); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for name, dst := range map[string]*float64{
		"planck_fk1": &rec.PlanckFk1,
		"planck_fk2": &rec.PlanckFk2,
		"planck_bc1": &rec.PlanckBc1,
		"planck_bc2": &rec.PlanckBc2,
	} {
		v, err := nc.GetVariable(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: no %s variable: %v", path, ErrMalformed, name, err)
		}
		if *dst, err = scalarFloat(v.Values); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, name, err)
		}
	}

	return rec, nil
}

// dimLen returns the length of a coordinate variable.
func dimLen(nc api.Group, name string) (int, error) {
	v, err := nc.GetVariable(name)
	if err != nil {
		return 0, fmt.Errorf("%w: no %s coordinate: %v", ErrMalformed, name, err)
	}
	rv := reflect.ValueOf(v.Values)
	if rv.Kind() != reflect.Slice {
		return 0, fmt.Errorf("%w: %s coordinate is %T, not a slice", ErrMalformed, name, v.Values)
	}
	return rv.Len(), nil
}

// flattenCounts converts the two-dimensional Rad variable to a row-major
// count slice.
func flattenCounts(values interface{}) ([]int16, error) {
	rows, ok := values.([][]int16)
	if !ok {
		return nil, fmt.Errorf("%w: Rad values are %T, want [][]int16", ErrMalformed, values)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty Rad variable", ErrMalformed)
	}
	data := make([]int16, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		data = append(data, row...)
	}
	return data, nil
}

func attrFloat(v *api.Variable, name string) (float64, error) {
	a, has := v.Attributes.Get(name)
	if !has {
		return 0, fmt.Errorf("%w: missing %s attribute", ErrMalformed, name)
	}
	return scalarFloat(a)
}

// scalarFloat accepts the numeric shapes the netCDF layer hands back for
// scalar values and attributes.
func scalarFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case []float64:
		if len(x) == 1 {
			return x[0], nil
		}
	case []float32:
		if len(x) == 1 {
			return float64(x[0]), nil
		}
	}
	return 0, fmt.Errorf("%w: unexpected numeric value %T", ErrMalformed, v)
}
