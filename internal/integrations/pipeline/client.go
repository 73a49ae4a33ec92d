// Package pipeline wraps the Step Functions API for the document-processing
// state machine: starting an execution and describing its current state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"

	"smartfill/internal/domain"
)

// sfnAPI is the minimal Step Functions interface required by Client.
// *sfn.Client from aws-sdk-go-v2 satisfies this interface.
type sfnAPI interface {
	StartExecution(ctx context.Context, in *sfn.StartExecutionInput, optFns ...func(*sfn.Options)) (*sfn.StartExecutionOutput, error)
	DescribeExecution(ctx context.Context, in *sfn.DescribeExecutionInput, optFns ...func(*sfn.Options)) (*sfn.DescribeExecutionOutput, error)
}

// Starter starts a new execution of the state machine.
type Starter interface {
	Start(ctx context.Context, name, input string) (domain.ExecutionHandle, error)
}

// Describer fetches the current state of an execution.
type Describer interface {
	Describe(ctx context.Context, arn string) (domain.Execution, error)
}

// Client wraps one state machine.
type Client struct {
	api             sfnAPI
	stateMachineARN string
}

// New creates a Client bound to the given state machine ARN.
func New(api sfnAPI, stateMachineARN string) (*Client, error) {
	if api == nil {
		return nil, errors.New("pipeline: api must not be nil")
	}
	if strings.TrimSpace(stateMachineARN) == "" {
		return nil, errors.New("pipeline: state machine ARN must not be empty")
	}
	return &Client{api: api, stateMachineARN: stateMachineARN}, nil
}

// Start begins a new execution with the given name and JSON input. The name
// must be unique per state machine; Step Functions rejects duplicates, which
// is what prevents two concurrent launches for the same session.
func (c *Client) Start(ctx context.Context, name, input string) (domain.ExecutionHandle, error) {
	if strings.TrimSpace(name) == "" {
		return domain.ExecutionHandle{}, errors.New("pipeline: execution name is required")
	}

	out, err := c.api.StartExecution(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(c.stateMachineARN),
		Name:            aws.String(name),
		Input:           aws.String(input),
	})
	if err != nil {
		return domain.ExecutionHandle{}, fmt.Errorf("pipeline: start execution %q: %w", name, err)
	}
	if out == nil || out.ExecutionArn == nil {
		return domain.ExecutionHandle{}, errors.New("pipeline: start execution returned no ARN")
	}

	return domain.ExecutionHandle{
		ARN:    *out.ExecutionArn,
		Status: domain.StatusPending,
	}, nil
}

// Describe fetches the execution's current status along with its raw output
// or error/cause payloads. The payloads are passed through undecoded.
func (c *Client) Describe(ctx context.Context, arn string) (domain.Execution, error) {
	arn = strings.TrimSpace(arn)
	if arn == "" {
		return domain.Execution{}, errors.New("pipeline: execution ARN is required")
	}

	out, err := c.api.DescribeExecution(ctx, &sfn.DescribeExecutionInput{
		ExecutionArn: aws.String(arn),
	})
	if err != nil {
		return domain.Execution{}, fmt.Errorf("pipeline: describe execution: %w", err)
	}

	return domain.Execution{
		ARN:       arn,
		Status:    domain.Status(out.Status),
		Output:    aws.ToString(out.Output),
		ErrorCode: aws.ToString(out.Error),
		Cause:     aws.ToString(out.Cause),
	}, nil
}
