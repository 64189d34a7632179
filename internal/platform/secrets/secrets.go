// Package secrets resolves credentials that may live outside the process
// environment. The admin token is read from config or, when a parameter name
// is configured, from AWS SSM Parameter Store with decryption.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

// ErrEmptyParameter is returned when the SSM parameter exists but holds no
// usable value.
var ErrEmptyParameter = errors.New("ssm parameter is empty")

// ParameterGetter is the subset of *ssm.Client used here.
type ParameterGetter interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewSSMClient builds an SSM client from the default AWS credential chain.
func NewSSMClient(ctx context.Context) (*ssm.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// AdminToken returns the configured bearer token. An empty result means the
// service runs without the bearer gate. getter is only consulted when
// cfg.AdminTokenSSMParameter is set and may be nil otherwise.
func AdminToken(ctx context.Context, cfg config.AuthConfig, getter ParameterGetter) (string, error) {
	if cfg.AdminTokenSSMParameter == "" {
		return cfg.AdminToken, nil
	}
	if getter == nil {
		return "", errors.New("admin token parameter configured without an ssm client")
	}

	out, err := getter.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(cfg.AdminTokenSSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("getting ssm parameter %s: %w", cfg.AdminTokenSSMParameter, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("%w: %s", ErrEmptyParameter, cfg.AdminTokenSSMParameter)
	}

	token := strings.TrimSpace(*out.Parameter.Value)
	if token == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyParameter, cfg.AdminTokenSSMParameter)
	}

	return token, nil
}
