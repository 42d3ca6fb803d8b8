package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/gateway/nosh"
	"github.com/noshnavigator/nosh-cli/internal/service/output"
	"github.com/noshnavigator/nosh-cli/internal/session"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

type globalFlags struct {
	Format  string
	Profile string
	Output  string
}

const sharedGlobalFlagAnnotation = "nosh_cli_shared_global"

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	addSharedGlobalFlag(cmd, "format", func() {
		cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, json, or yaml.")
	})
	addSharedGlobalFlag(cmd, "profile", func() {
		cmd.Flags().StringVar(&flags.Profile, "profile", "", "Profile name for saved local defaults.")
	})
	addSharedGlobalFlag(cmd, "output", func() {
		cmd.Flags().StringVar(&flags.Output, "output", "", "Also write the rendered output to this file path.")
	})
}

func addSharedGlobalFlag(cmd *cobra.Command, name string, register func()) {
	if cmd.Flags().Lookup(name) != nil {
		return
	}
	register()
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	if flag.Annotations == nil {
		flag.Annotations = map[string][]string{}
	}
	flag.Annotations[sharedGlobalFlagAnnotation] = []string{"true"}
}

func resolveProfileLabel(profileName string) string {
	profile := strings.TrimSpace(profileName)
	if profile == "" {
		return "default"
	}
	return profile
}

func parseOutputFormat(format string) (output.Format, error) {
	return output.ParseFormat(format)
}

func writeTable(cmd *cobra.Command, text string, outputPath string) error {
	return output.WriteOutput(cmd.OutOrStdout(), text, outputPath)
}

func writeMachinePayload(cmd *cobra.Command, env output.Envelope, format output.Format, outputPath string) error {
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		return err
	}
	return output.WriteOutput(cmd.OutOrStdout(), rendered, outputPath)
}

func emitError(
	cmd *cobra.Command,
	format output.Format,
	profile string,
	outputPath string,
	code string,
	message string,
) error {
	if format == output.FormatTable {
		if err := output.WriteOutput(cmd.OutOrStdout(), message, outputPath); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(profile, nil, []string{}, map[string]any{
		"code":    code,
		"message": message,
	})
	if err := writeMachinePayload(cmd, env, format, outputPath); err != nil {
		return err
	}
	return &exitError{code: 1}
}

// resolveLocation decides which coordinate a command works with. Order:
// explicit --lat/--lon, --address geocoding, the fresh cached location.
// A nil result means the command proceeds without a location.
func resolveLocation(
	ctx context.Context,
	deps Dependencies,
	sess *domain.Session,
	lat, lon *float64,
	address string,
) (*domain.Location, error) {
	if lat != nil || lon != nil {
		if lat == nil || lon == nil {
			return nil, fmt.Errorf("both --lat and --lon must be provided together")
		}
		loc := domain.Location{Lat: *lat, Lon: *lon}
		session.RememberLocation(sess, loc, deps.now())
		return &loc, nil
	}

	if resolved := strings.TrimSpace(address); resolved != "" {
		if deps.Geocoder == nil {
			return nil, fmt.Errorf("location resolver is not available")
		}
		loc, err := deps.Geocoder.Resolve(ctx, resolved)
		if err != nil {
			return nil, err
		}
		session.RememberLocation(sess, loc, deps.now())
		return &loc, nil
	}

	if loc, ok := session.FreshLocation(*sess, deps.now()); ok {
		return &loc, nil
	}
	return nil, nil
}

// resolveToken picks the session token: explicit flag first, then the
// selected profile's saved token.
func resolveToken(ctx context.Context, deps Dependencies, flags globalFlags, explicit string) string {
	if token := strings.TrimSpace(explicit); token != "" {
		return token
	}
	if deps.Profiles == nil {
		return ""
	}
	profile, err := deps.Profiles.Find(ctx, flags.Profile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(profile.Token)
}

func emitServerError(
	cmd *cobra.Command,
	format output.Format,
	profile string,
	outputPath string,
	err error,
) error {
	if err == nil {
		err = nosh.ErrServer
	}
	message := err.Error()
	var apiErr *nosh.APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		message = serverErrorMessage(apiErr.Code)
	}
	return emitError(cmd, format, profile, outputPath, "NOSH_SERVER_ERROR", message)
}

// serverErrorMessage turns wire codes into readable feedback.
func serverErrorMessage(code string) string {
	switch code {
	case "invalid_input":
		return "Missing or invalid fields. Check name, username, email, and password (6+ characters)."
	case "invalid_email":
		return "That email address doesn't look valid."
	case "username_taken":
		return "That username is already taken."
	case "email_taken":
		return "That email is already registered."
	case "not_found":
		return "No account matches that username or email."
	case "bad_credentials":
		return "Incorrect password."
	default:
		return code
	}
}

func formatPrice(value float64) string {
	return "$" + strconv.FormatFloat(value, 'f', 2, 64)
}

func requiredArg(name string) string {
	return fmt.Sprintf("%s is required", name)
}
