// Generate panel: prompt entry, quality selection, job progress.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/generation"
	"github.com/Faultbox/meshforge/internal/logger"
)

var qualityTiers = []generation.Quality{
	generation.QualityDraft,
	generation.QualityStandard,
	generation.QualityHigh,
}

// renderGeneratePanel renders the prompt form and job progress.
func (app *App) renderGeneratePanel() {
	imgui.Text("Prompt:")
	imgui.SetNextItemWidth(-1)
	submitted := imgui.InputTextWithHint("##prompt", "Describe the model to generate...",
		&app.promptText, imgui.InputTextFlagsEnterReturnsTrue, nil)

	imgui.Text("Quality:")
	imgui.SameLine()
	imgui.SetNextItemWidth(110)
	if imgui.BeginCombo("##quality", string(app.quality)) {
		for _, q := range qualityTiers {
			if imgui.SelectableBoolV(string(q), q == app.quality, 0, imgui.NewVec2(0, 0)) {
				app.quality = q
			}
		}
		imgui.EndCombo()
	}
	imgui.SameLine()
	imgui.Checkbox("Enhance", &app.enhance)
	if imgui.IsItemHovered() {
		imgui.SetTooltip("Expand the prompt with detail and style modifiers")
	}

	if app.jobRunning {
		imgui.BeginDisabledV(true)
		imgui.ButtonV("Generate", imgui.NewVec2(-1, 30))
		imgui.EndDisabled()
		if imgui.ButtonV("Cancel", imgui.NewVec2(-1, 0)) {
			app.controller.Cancel()
		}

		imgui.ProgressBarV(float32(app.activeJob.Progress/100),
			imgui.NewVec2(-1, 20), fmt.Sprintf("%.0f%%", app.activeJob.Progress))
		if app.activeJob.Message != "" {
			imgui.TextWrapped(app.activeJob.Message)
		}
	} else {
		if imgui.ButtonV("Generate", imgui.NewVec2(-1, 30)) || submitted {
			app.submit()
		}
	}

	if app.lastError != "" {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), "Error:")
		imgui.TextWrapped(app.lastError)
	}
}

// submit validates and posts the current prompt. Enhancement runs after
// the empty check so modifiers cannot rescue a blank prompt.
func (app *App) submit() {
	if strings.TrimSpace(app.promptText) == "" {
		app.lastError = "prompt must not be empty"
		return
	}

	prompt := app.promptText
	if app.enhance {
		prompt = generation.EnhancePrompt(prompt)
		logger.Info("prompt enhanced", zap.String("prompt", prompt))
	}

	job, err := app.controller.Submit(context.Background(), prompt, app.quality)
	if err != nil {
		app.lastError = err.Error()
		return
	}

	app.lastError = ""
	app.activeJob = job
	app.jobRunning = true
}
