// Package tools holds the registered actions the dispatcher can execute.
package tools

import (
	"context"
	"fmt"
	"strconv"

	taskpilot "github.com/davidhaley/taskpilot"
)

// AddTool sums a list of numbers.
type AddTool struct{}

func (AddTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name:        "add_numbers",
		Args:        []taskpilot.ArgSpec{{Name: "numbers", Type: "list of numbers"}},
		Description: "returns the result of addition",
	}
}

func (AddTool) Invoke(_ context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	nums, err := numbersArg(req, "numbers")
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return numberResponse(sum), nil
}

// SubtractTool computes a - b.
type SubtractTool struct{}

func (SubtractTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name:        "subtract",
		Args:        []taskpilot.ArgSpec{{Name: "a", Type: "number"}, {Name: "b", Type: "number"}},
		Description: "returns the result of subtraction",
	}
}

func (SubtractTool) Invoke(_ context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	a, err := numberArg(req, "a")
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}
	b, err := numberArg(req, "b")
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}
	return numberResponse(a - b), nil
}

// MultiplyTool multiplies a list of numbers.
type MultiplyTool struct{}

func (MultiplyTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name:        "multiply",
		Args:        []taskpilot.ArgSpec{{Name: "numbers", Type: "list of numbers"}},
		Description: "returns the result of multiplication",
	}
}

func (MultiplyTool) Invoke(_ context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	nums, err := numbersArg(req, "numbers")
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}
	result := 1.0
	for _, n := range nums {
		result *= n
	}
	return numberResponse(result), nil
}

// DivideTool computes a / b. Division by zero is a result, not a failure:
// the caller receives the error text as the tool's value.
type DivideTool struct{}

func (DivideTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name:        "divide",
		Args:        []taskpilot.ArgSpec{{Name: "a", Type: "number"}, {Name: "b", Type: "number"}},
		Description: "returns the result of division",
	}
}

func (DivideTool) Invoke(_ context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	a, err := numberArg(req, "a")
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}
	b, err := numberArg(req, "b")
	if err != nil {
		return taskpilot.ToolResponse{}, err
	}
	if b == 0 {
		return taskpilot.ToolResponse{Content: "Error: Division by zero"}, nil
	}
	return numberResponse(a / b), nil
}

func numberResponse(v float64) taskpilot.ToolResponse {
	return taskpilot.ToolResponse{
		Content: strconv.FormatFloat(v, 'f', -1, 64),
		Payload: v,
	}
}

// numberArg pulls a single numeric argument. JSON numbers arrive as
// float64; integers given as strings are tolerated.
func numberArg(req taskpilot.ToolRequest, name string) (float64, error) {
	raw, ok := req.Arguments[name]
	if !ok {
		return 0, fmt.Errorf("missing %q argument", name)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("argument %q is not a number: %q", name, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("argument %q is not a number (got %T)", name, raw)
	}
}

func numbersArg(req taskpilot.ToolRequest, name string) ([]float64, error) {
	raw, ok := req.Arguments[name]
	if !ok {
		return nil, fmt.Errorf("missing %q argument", name)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q is not a list (got %T)", name, raw)
	}
	nums := make([]float64, 0, len(list))
	for i, item := range list {
		f, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("argument %q element %d is not a number (got %T)", name, i, item)
		}
		nums = append(nums, f)
	}
	return nums, nil
}
