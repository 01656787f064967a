package extract

// Step is one side-effecting stage of an extraction.
type Step int

const (
	StepDirectory Step = iota
	StepStylesheet
	StepClass
	StepTemplate
)

// StepCount is the number of side-effecting steps in an extraction.
const StepCount = 4

func (s Step) String() string {
	switch s {
	case StepDirectory:
		return "directory"
	case StepStylesheet:
		return "stylesheet"
	case StepClass:
		return "class"
	case StepTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// ProgressReporter provides callbacks for reporting extraction progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnExtractionStart is called once all inputs are read and before the
	// first write.
	OnExtractionStart(set *ArtifactSet)

	// OnStepComplete is called after each directory or file is written.
	OnStepComplete(step Step, path string)

	// OnExtractionComplete is called when every artifact has been written.
	OnExtractionComplete(set *ArtifactSet)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnExtractionStart(set *ArtifactSet)    {}
func (n *NoOpProgressReporter) OnStepComplete(step Step, path string) {}
func (n *NoOpProgressReporter) OnExtractionComplete(set *ArtifactSet) {}
