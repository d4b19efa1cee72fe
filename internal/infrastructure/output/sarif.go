package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/ragzilla/GetOffMyNetwork/internal/application/services"
	"github.com/ragzilla/GetOffMyNetwork/internal/version"
)

const networkRuleID = "network-capability"

// SARIFFormatter formats a scan report as SARIF 2.1.0 JSON, one result per
// module flagged with networking capability.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(w io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: w}
}

// Format writes the scan report as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(report *services.Report) error {
	doc := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("GetOffMyNetwork", "https://github.com/ragzilla/GetOffMyNetwork")
	v := version.Get().Version
	run.Tool.Driver.Version = &v

	ruleName := "Module invokes networking capabilities"
	ruleDesc := "The module's instruction stream contains calls into forbidden networking capability namespaces."
	rule := sarif.NewReportingDescriptor().WithID(networkRuleID)
	rule.WithName("NetworkCapability")
	rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &ruleName})
	rule.WithFullDescription(&sarif.MultiformatMessageString{Text: &ruleDesc})
	run.Tool.Driver.AddRule(rule)

	for _, m := range report.Modules {
		if !m.Violator {
			continue
		}

		result := sarif.NewRuleResult(networkRuleID)
		if m.Permitted {
			result.Level = "note"
			result.Message = sarif.NewTextMessage(fmt.Sprintf("%s uses networking capabilities (allowed by operator)", m.Identity))
		} else {
			result.Level = "warning"
			result.Message = sarif.NewTextMessage(fmt.Sprintf("%s uses networking capabilities (components suspended)", m.Identity))
		}

		props := sarif.NewPropertyBag()
		props.Add("identity", m.Identity)
		props.Add("hash", m.Content)
		props.Add("permitted", m.Permitted)
		result.WithProperties(props)

		run.AddResult(result)
	}

	props := sarif.NewPropertyBag()
	props.Add("pass", report.PassID)
	props.Add("suspended_components", report.Suspended)
	props.Add("newly_discovered", report.NewlyDiscovered)
	run.WithProperties(props)

	doc.AddRun(run)

	if err := doc.Write(f.writer); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	_, err := f.writer.Write([]byte("\n"))
	return err
}
