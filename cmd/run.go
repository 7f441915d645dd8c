package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devVux/soutien/internal/logger"
	"github.com/devVux/soutien/internal/pipeline"
	"github.com/devVux/soutien/internal/render"
)

var runCmd = &cobra.Command{
	Use:   "run <manifest.yaml>",
	Short: "Run the pipeline described by a manifest",
	Long: `Load a pipeline manifest, build its guarded tasks and invoke them. Tasks
are invoked in the manifest's invoke sequence, or in dependency order
when no sequence is given. A blocked task is reported, not fatal; re-run
the pipeline after its missing dependencies have completed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := pipeline.LoadManifest(args[0])
		if err != nil {
			return err
		}

		p, err := manifest.Pipeline()
		if err != nil {
			return err
		}

		logger.User.Startingf("Running pipeline %q (%d tasks)", p.Name, p.Size())

		report, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}

		printReport(cmd, p, report)
		return nil
	},
}

func printReport(cmd *cobra.Command, p *pipeline.Pipeline, report *pipeline.Report) {
	out := cmd.OutOrStdout()

	table := render.NewTable("Task", "State", "Requires")
	for _, name := range p.ExecutionOrder() {
		state := "pending"
		if task, ok := p.Task(name); ok && task.Satisfied() {
			state = "satisfied"
		}
		table.AddRow(name, state, strings.Join(p.Requires(name), ", "))
	}
	fmt.Fprintln(out, table.String())

	if len(report.Blocked) > 0 {
		box := render.NewBox(render.WarningMessage,
			fmt.Sprintf("%d of %d invoked tasks blocked by unmet dependencies", len(report.Blocked), len(report.Invoked)))
		for _, name := range report.Blocked {
			box.AddBullet(name)
		}
		fmt.Fprintln(out, box.Render())
	} else {
		fmt.Fprintln(out, render.Success(
			fmt.Sprintf("All %d invoked tasks executed", len(report.Invoked))))
	}

	logger.Op.WithFields(map[string]interface{}{
		"pipeline": report.Pipeline,
		"run_id":   report.RunID,
		"executed": len(report.Executed),
		"blocked":  len(report.Blocked),
	}).Debugf("pipeline run finished")
}
