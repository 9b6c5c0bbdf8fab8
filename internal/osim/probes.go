package osim

import (
	"fmt"
	"strconv"

	"osimkit/internal/report"
)

// ProbeKind selects the muscle energetics model a metabolics probe
// computes with.
type ProbeKind string

const (
	Umberger2010 ProbeKind = "Umberger2010"
	Bhargava2004 ProbeKind = "Bhargava2004"
)

// WholeBodyProbe is the name of the aggregate probe spanning every muscle.
const WholeBodyProbe = "whole_body_metabolics"

// ParseProbeKind validates a probe kind string.
func ParseProbeKind(s string) (ProbeKind, error) {
	switch ProbeKind(s) {
	case Umberger2010, Bhargava2004:
		return ProbeKind(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)",
			ErrUnsupportedVariant, s, Umberger2010, Bhargava2004)
	}
}

func (k ProbeKind) elementName() string {
	return string(k) + "MuscleMetabolicsProbe"
}

// Contribution is one muscle's weighted share in a probe's accounting.
type Contribution struct {
	Muscle string
	Weight float64
}

// ProbeName derives the per-muscle probe name.
func ProbeName(muscle string) string {
	return muscle + "_metabolics"
}

func probeElement(kind ProbeKind, name string, contributions []Contribution) *element {
	probe := newElement(kind.elementName())
	probe.setAttr("name", name)
	probe.append(
		leafElement("isDisabled", "false"),
		leafElement("probe_operation", "value"),
	)

	objects := newElement("objects")
	for _, c := range contributions {
		param := newElement("MetabolicMuscleParameter")
		param.setAttr("name", c.Muscle)
		param.append(leafElement("weight", strconv.FormatFloat(c.Weight, 'f', 8, 64)))
		objects.append(param)
	}

	paramSet := newElement("MetabolicMuscleParameterSet")
	paramSet.append(objects, newElement("groups"))
	probe.append(paramSet)

	return probe
}

// AddMetabolicProbes loads the model at modelPath, attaches one metabolics
// probe of the given kind per muscle (named "{muscle}_metabolics", that
// muscle as sole contributor with weight 1.0) plus a whole_body_metabolics
// probe aggregating every muscle with weight 1.0 each, and saves the
// result to outPath. The kind is validated before any mutation, so an
// unsupported kind never produces an output file.
func AddMetabolicProbes(modelPath, outPath string, kind ProbeKind) (string, error) {
	if _, err := ParseProbeKind(string(kind)); err != nil {
		return "", err
	}

	model, err := LoadModel(modelPath)
	if err != nil {
		return "", err
	}

	muscles := model.Muscles()
	for _, muscle := range muscles {
		probe := probeElement(kind, ProbeName(muscle), []Contribution{
			{Muscle: muscle, Weight: 1.0},
		})
		model.AddProbe(probe)
	}

	contributions := make([]Contribution, len(muscles))
	for i, muscle := range muscles {
		contributions[i] = Contribution{Muscle: muscle, Weight: 1.0}
	}
	model.AddProbe(probeElement(kind, WholeBodyProbe, contributions))

	if err := model.Save(outPath); err != nil {
		return "", err
	}

	report.Successf("metabolic probes added: %s", outPath)
	return outPath, nil
}
