package cli

import (
	"github.com/bridgr-io/bridgr/internal/logging"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "bridgr",
	Short: "CloudWatch Events to Lambda delivery wiring for CloudFormation templates",
	Long: `Bridgr augments a CloudFormation template so that Lambda functions are
invoked, with guaranteed-delivery semantics, whenever matching events arrive
on CloudWatch Events, routed through an SNS topic.

For every cloudwatchSns event binding in the service manifest it:
  • provisions a shared SQS dead-letter queue when none is supplied
  • grants the Events→SNS and SNS→SQS trust policies
  • appends a topic target to the pre-existing event rule (max 5 per rule)
  • subscribes the function to the topic with redrive and filtering
  • grants SNS permission to invoke the function

Bridgr only emits declarative resources; provisioning is a separate step.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logLevel)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(preflightCmd)
	rootCmd.AddCommand(versionCmd)
}
