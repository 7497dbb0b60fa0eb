package configurator

import "fmt"

// Step is a wizard page, numbered from 1.
type Step int

const (
	StepStyle Step = iota + 1
	StepResin
	StepColor
	StepPersonalize
)

const (
	FirstStep = StepStyle
	LastStep  = StepPersonalize
)

func (s Step) Valid() bool {
	return s >= FirstStep && s <= LastStep
}

func (s Step) String() string {
	switch s {
	case StepStyle:
		return "style"
	case StepResin:
		return "resin-coverage"
	case StepColor:
		return "color"
	case StepPersonalize:
		return "personalize"
	}
	return fmt.Sprintf("step(%d)", int(s))
}
