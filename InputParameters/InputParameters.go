package InputParameters

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	"github.com/notargets/feorient/lattice"
	"github.com/notargets/feorient/topology"
)

// Parameters obtained from the YAML input file of the table command
type TableParameters struct {
	Title     string  `yaml:"Title"`
	Cell      string  `yaml:"Cell"`
	Degrees   []int   `yaml:"Degrees"`
	PointType string  `yaml:"PointType"` // Equispaced or WarpBlend
	Workers   int     `yaml:"Workers"`
	Tolerance float64 `yaml:"Tolerance"` // Drop tolerance of the sparse tables
}

func (ip *TableParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return errors.Wrap(err, "parsing table parameters")
	}
	return ip.Validate()
}

// Validate checks the names and ranges of every parameter.
func (ip *TableParameters) Validate() (err error) {
	if _, err = ip.CellKey(); err != nil {
		return
	}
	if _, err = ip.Points(); err != nil {
		return
	}
	if len(ip.Degrees) == 0 {
		return errors.New("at least one entry in Degrees is required")
	}
	for _, p := range ip.Degrees {
		if p < 1 {
			return errors.Errorf("invalid degree %d", p)
		}
	}
	if ip.Workers < 0 || ip.Tolerance < 0 {
		return errors.Errorf("Workers (%d) and Tolerance (%g) must be non negative", ip.Workers, ip.Tolerance)
	}
	return
}

func (ip *TableParameters) CellKey() (topology.Key, error) {
	return topology.NewKey(ip.Cell)
}

// Points defaults to equispaced nodes when PointType is not given.
func (ip *TableParameters) Points() (lattice.PointType, error) {
	if len(ip.PointType) == 0 {
		return lattice.Equispaced, nil
	}
	return lattice.NewPointType(ip.PointType)
}

func (ip *TableParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Cell\n", ip.Cell)
	fmt.Fprintf(w, "%v\t\t= Degrees\n", ip.Degrees)
	fmt.Fprintf(w, "[%s]\t\t= Point Type\n", ip.PointType)
	fmt.Fprintf(w, "[%d]\t\t\t= Workers\n", ip.Workers)
	fmt.Fprintf(w, "%8.3e\t\t= Tolerance\n", ip.Tolerance)
}
