package tools

import (
	"context"
	"fmt"
	"strings"

	taskpilot "github.com/davidhaley/taskpilot"
)

// WeatherTool reports a fixed forecast for the requested city. A live
// provider can replace it without touching the dispatch pipeline.
type WeatherTool struct{}

func (WeatherTool) Spec() taskpilot.ToolSpec {
	return taskpilot.ToolSpec{
		Name:        "get_weather",
		Args:        []taskpilot.ArgSpec{{Name: "city", Type: "string"}},
		Description: "returns the weather of the city passed as a parameter",
	}
}

func (WeatherTool) Invoke(_ context.Context, req taskpilot.ToolRequest) (taskpilot.ToolResponse, error) {
	city, ok := req.Arguments["city"].(string)
	if !ok || strings.TrimSpace(city) == "" {
		return taskpilot.ToolResponse{}, fmt.Errorf("missing %q argument", "city")
	}
	return taskpilot.ToolResponse{
		Content: fmt.Sprintf("The weather in %s is 25°C and sunny (hardcoded)", city),
	}, nil
}
