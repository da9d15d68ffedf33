package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
	"github.com/alexisbeaulieu97/keysmith/internal/provision"
)

func newStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps [step-id]",
		Short: "Print the provisioning steps and their dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def := provision.Definition()
			if err := def.Validate(); err != nil {
				return err
			}
			if len(args) == 1 {
				return renderStep(cmd, def, args[0])
			}
			return renderSteps(cmd, def)
		},
	}
}

func renderSteps(cmd *cobra.Command, def pipeline.Pipeline) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "#\tID\tNAME\tDEPENDS ON\tREQUIRED BY")
	for i, step := range def.Steps {
		dependents, err := def.Dependents(step.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n", i+1, step.ID, step.Name,
			joinOrDash(step.SortedDependencies()), joinOrDash(dependents))
	}
	return writer.Flush()
}

func renderStep(cmd *cobra.Command, def pipeline.Pipeline, id string) error {
	step, err := def.GetStep(id)
	if pipeline.IsCode(err, pipeline.ErrCodeNotFound) {
		return fmt.Errorf("unknown step %q (available: %s)", id, strings.Join(def.IDs(), ", "))
	}
	if err != nil {
		return err
	}
	dependents, err := def.Dependents(step.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", step.ID)
	fmt.Fprintf(out, "Name:        %s\n", step.Name)
	fmt.Fprintf(out, "Depends on:  %s\n", joinOrDash(step.SortedDependencies()))
	fmt.Fprintf(out, "Required by: %s\n", joinOrDash(dependents))
	return nil
}

func joinOrDash(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ",")
}
