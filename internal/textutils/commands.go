package textutils

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/temirov/gbs/internal/report"
)

const (
	isIntegerCommandUseConstant              = "text-is-integer <value>"
	isIntegerCommandShortDescriptionConstant = "Check whether a value is an unsigned integer"
	isIntegerCommandLongDescriptionConstant  = "text-is-integer prints valid when every character of the value is a decimal digit and invalid otherwise."
	isIntegerUsageSpecificationConstant      = "gbs text-is-integer <value>"
	upperCommandUseConstant                  = "text-upper <text>"
	upperCommandShortDescriptionConstant     = "Convert text to uppercase"
	upperCommandLongDescriptionConstant      = "text-upper prints the provided text converted to its uppercase form."
	upperUsageSpecificationConstant          = "gbs text-upper <text>"
	padCommandUseConstant                    = "text-pad <width> <text>"
	padCommandShortDescriptionConstant       = "Right-align text within a fixed width"
	padCommandLongDescriptionConstant        = "text-pad prints the provided text padded with leading spaces up to the requested width."
	padUsageSpecificationConstant            = "gbs text-pad <width> <text>"
	randomCommandUseConstant                 = "text-random <length>"
	randomCommandShortDescriptionConstant    = "Generate a random alphanumeric string"
	randomCommandLongDescriptionConstant     = "text-random prints a random alphanumeric string of the requested length."
	randomUsageSpecificationConstant         = "gbs text-random <length>"
	integerArgumentLabelConstant             = "integer"
	widthArgumentLabelConstant               = "width"
	lengthArgumentLabelConstant              = "length"
	validVerdictConstant                     = "valid"
	invalidVerdictConstant                   = "invalid"
	outputLineTemplateConstant               = "%s\n"
	singleArgumentCountConstant              = 1
	paddedArgumentCountConstant              = 2
	widthArgumentIndexConstant               = 0
	paddedTextArgumentIndexConstant          = 1
)

// IsIntegerCommandBuilder assembles the text-is-integer command.
type IsIntegerCommandBuilder struct{}

// Build constructs the text-is-integer command.
func (builder *IsIntegerCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   isIntegerCommandUseConstant,
		Short: isIntegerCommandShortDescriptionConstant,
		Long:  isIntegerCommandLongDescriptionConstant,
		RunE:  builder.run,
	}, nil
}

func (builder *IsIntegerCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != singleArgumentCountConstant {
		return report.NewError(report.KindUsage, isIntegerUsageSpecificationConstant)
	}

	candidateValue := arguments[0]
	if !IsUnsignedInteger(candidateValue) {
		fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, invalidVerdictConstant)
		return report.NewError(report.KindInvalidArgument, integerArgumentLabelConstant, candidateValue)
	}

	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, validVerdictConstant)
	return nil
}

// UpperCommandBuilder assembles the text-upper command.
type UpperCommandBuilder struct{}

// Build constructs the text-upper command.
func (builder *UpperCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   upperCommandUseConstant,
		Short: upperCommandShortDescriptionConstant,
		Long:  upperCommandLongDescriptionConstant,
		RunE:  builder.run,
	}, nil
}

func (builder *UpperCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != singleArgumentCountConstant {
		return report.NewError(report.KindUsage, upperUsageSpecificationConstant)
	}

	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, Uppercase(arguments[0]))
	return nil
}

// PadCommandBuilder assembles the text-pad command.
type PadCommandBuilder struct{}

// Build constructs the text-pad command.
func (builder *PadCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   padCommandUseConstant,
		Short: padCommandShortDescriptionConstant,
		Long:  padCommandLongDescriptionConstant,
		RunE:  builder.run,
	}, nil
}

func (builder *PadCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != paddedArgumentCountConstant {
		return report.NewError(report.KindUsage, padUsageSpecificationConstant)
	}

	widthArgument := arguments[widthArgumentIndexConstant]
	if !IsUnsignedInteger(widthArgument) {
		return report.NewError(report.KindInvalidArgument, widthArgumentLabelConstant, widthArgument)
	}

	paddingWidth, parseError := strconv.Atoi(widthArgument)
	if parseError != nil {
		return report.NewError(report.KindInvalidArgument, widthArgumentLabelConstant, widthArgument)
	}

	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, PadWithSpaces(arguments[paddedTextArgumentIndexConstant], paddingWidth))
	return nil
}

// RandomCommandBuilder assembles the text-random command.
type RandomCommandBuilder struct{}

// Build constructs the text-random command.
func (builder *RandomCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   randomCommandUseConstant,
		Short: randomCommandShortDescriptionConstant,
		Long:  randomCommandLongDescriptionConstant,
		RunE:  builder.run,
	}, nil
}

func (builder *RandomCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != singleArgumentCountConstant {
		return report.NewError(report.KindUsage, randomUsageSpecificationConstant)
	}

	lengthArgument := arguments[0]
	if !IsUnsignedInteger(lengthArgument) {
		return report.NewError(report.KindInvalidArgument, lengthArgumentLabelConstant, lengthArgument)
	}

	requestedLength, parseError := strconv.Atoi(lengthArgument)
	if parseError != nil {
		return report.NewError(report.KindInvalidArgument, lengthArgumentLabelConstant, lengthArgument)
	}

	randomText, generationError := RandomAlphanumericString(requestedLength)
	if generationError != nil {
		return generationError
	}

	fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, randomText)
	return nil
}
