// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux: report renderers for planning engine results.
//
// Renderers ONLY render. They take a result struct and return a styled
// multi-line string; they never print, never compute, and never mutate
// their input. The CLI decides where the string goes.
package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/AleutianPlan/services/planning"
	"github.com/AleutianAI/AleutianPlan/services/planning/capacity"
	"github.com/AleutianAI/AleutianPlan/services/planning/confidence"
	"github.com/AleutianAI/AleutianPlan/services/planning/estimation"
	"github.com/AleutianAI/AleutianPlan/services/planning/priority"
	"github.com/AleutianAI/AleutianPlan/services/planning/risk"
	"github.com/AleutianAI/AleutianPlan/services/planning/roadmap"
	"github.com/AleutianAI/AleutianPlan/services/planning/suggest"
)

// RenderDependencyAnalysis formats the dependency analysis report.
func RenderDependencyAnalysis(res planning.DependencyAnalysis) string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Dependency Analysis") + "\n\n")

	if len(res.Analysis.Cycles) > 0 {
		b.WriteString(Styles.Warning.Render(fmt.Sprintf("%s %d circular dependency chain(s) detected", IconWarning, len(res.Analysis.Cycles))) + "\n")
		for _, cycle := range res.Analysis.Cycles {
			b.WriteString("  " + Styles.Muted.Render(strings.Join(cycle, " → ")) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(Styles.Subtitle.Render("Execution order") + "\n")
	b.WriteString("  " + strings.Join(res.Analysis.ExecutionOrder, " → ") + "\n\n")

	b.WriteString(Styles.Subtitle.Render("Parallel waves") + "\n")
	for i, wave := range res.Analysis.ParallelGroups {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, strings.Join(wave, ", ")))
	}
	b.WriteString("\n")

	b.WriteString(Styles.Subtitle.Render("Critical path") + "\n")
	b.WriteString("  " + strings.Join(res.Analysis.CriticalPath, " → ") + "\n")

	if len(res.ImplicitDependencies) > 0 {
		b.WriteString("\n" + Styles.Subtitle.Render("Implicit dependencies") + "\n")
		for _, e := range res.ImplicitDependencies {
			b.WriteString(fmt.Sprintf("  %s %s → %s %s\n",
				IconBullet, e.From, e.To,
				Styles.Muted.Render(fmt.Sprintf("(%.0f%%, %s)", e.Confidence*100, e.Reason))))
		}
	}
	return b.String()
}

// RenderPriorities formats the backlog ranking report.
func RenderPriorities(res priority.Result) string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Backlog Priorities") + "\n\n")
	for i, item := range res.PrioritizedItems {
		b.WriteString(fmt.Sprintf("  %2d. %s  %s  %s\n",
			i+1,
			Styles.Bold.Render(item.ID),
			scoreStyle(item.Score).Render(fmt.Sprintf("%3d", item.Score)),
			Styles.Muted.Render(string(item.Priority))))
		b.WriteString("      " + Styles.Muted.Render(item.Reasoning) + "\n")
	}
	b.WriteString("\n" + renderConfidence(res.Confidence))
	return b.String()
}

// RenderCapacity formats the sprint capacity report.
func RenderCapacity(sc capacity.SprintCapacity) string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Sprint Capacity") + "\n\n")
	b.WriteString(fmt.Sprintf("  Velocity:         %.1f", sc.Velocity))
	if sc.VelocityDerived {
		b.WriteString(Styles.Muted.Render("  (derived from history)"))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Total points:     %d\n", sc.TotalPoints))
	b.WriteString(fmt.Sprintf("  Recommended load: %s\n", Styles.Highlight.Render(fmt.Sprintf("%d", sc.RecommendedLoad))))
	b.WriteString(fmt.Sprintf("  Buffer:           %.0f%% %s\n", sc.Buffer.Percentage*100, Styles.Muted.Render("("+sc.Buffer.Reasoning+")")))

	if len(sc.TeamAvailability.Members) > 0 {
		b.WriteString("\n" + Styles.Subtitle.Render("Team availability") + "\n")
		for _, m := range sc.TeamAvailability.Members {
			b.WriteString(fmt.Sprintf("  %s %-20s %3.0f%%  contributes %.0f%%\n",
				IconBullet, m.Name, m.Availability*100, m.Contribution*100))
		}
	}
	b.WriteString("\n" + renderConfidence(sc.Confidence))
	return b.String()
}

// RenderEstimate formats a task estimate.
func RenderEstimate(est estimation.Estimate) string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Task Estimate") + "\n\n")
	b.WriteString(fmt.Sprintf("  Points:     %s  (range %d-%d)\n",
		Styles.Highlight.Render(fmt.Sprintf("%d", est.Points)), est.Range.Low, est.Range.High))
	b.WriteString(fmt.Sprintf("  Confidence: %d\n", est.Confidence))
	if est.Calibrated && est.CalibrationFactor != nil {
		b.WriteString(fmt.Sprintf("  %s calibrated ×%.2f from history\n", IconSuccess.Render(), *est.CalibrationFactor))
	}
	b.WriteString("  " + Styles.Muted.Render(est.Reasoning) + "\n")
	return b.String()
}

// RenderAccuracyStats formats estimation accuracy history by band.
func RenderAccuracyStats(stats estimation.AccuracyStats) string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Estimation Accuracy") + "\n\n")
	b.WriteString(fmt.Sprintf("  %d record(s), %d closed\n", stats.TotalRecords, stats.TotalClosed))

	for _, band := range []estimation.Band{estimation.BandLow, estimation.BandMedium, estimation.BandHigh} {
		bs, ok := stats.Bands[band]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %-7s %d sample(s)%s\n",
			IconBullet, band, bs.SampleCount,
			Styles.Muted.Render(fmt.Sprintf("  avg error %.0f%%", bs.AvgError*100))))
	}
	return b.String()
}

// RenderRisks formats the sprint risk assessment.
func RenderRisks(res risk.Result) string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Sprint Risk Assessment") + "\n\n")
	b.WriteString(fmt.Sprintf("  Overall: %s  (score %d/100)\n\n",
		levelStyle(res.OverallRisk).Render(strings.ToUpper(string(res.OverallRisk))), res.RiskScore))

	if len(res.Risks) == 0 {
		b.WriteString("  " + IconSuccess.Render() + " no risks detected\n")
		return b.String()
	}

	for _, r := range res.Risks {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			levelIcon(r.Probability).Render(),
			Styles.Bold.Render(r.Title),
			Styles.Muted.Render(fmt.Sprintf("[%s, probability %s, impact %s]", r.Category, r.Probability, r.Impact))))
		b.WriteString("    " + r.Description + "\n")
		for _, m := range res.Mitigations {
			if m.RiskID == r.ID {
				b.WriteString(fmt.Sprintf("    %s %s: %s\n", IconArrow, m.Strategy, m.Action))
			}
		}
	}
	b.WriteString("\n" + renderConfidence(res.Confidence))
	return b.String()
}

// RenderSuggestion formats a sprint suggestion.
func RenderSuggestion(res suggest.Result) string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Sprint Suggestion") + "\n\n")
	b.WriteString(fmt.Sprintf("  %d point(s) of %d recommended\n\n", res.TotalPoints, res.Capacity.RecommendedLoad))

	for _, item := range res.Items {
		b.WriteString(fmt.Sprintf("  %s %s (%dpt)  %s\n",
			IconSuccess.Render(),
			Styles.Bold.Render(item.ID),
			item.Points,
			Styles.Muted.Render(item.IncludeReason)))
	}
	for _, ex := range res.Excluded {
		b.WriteString(fmt.Sprintf("  %s %s  %s\n",
			IconPending.Render(), ex.ID, Styles.Muted.Render(ex.Reason)))
	}

	if res.Risks != nil && len(res.Risks.Risks) > 0 {
		b.WriteString(fmt.Sprintf("\n  %s %d risk(s), overall %s\n",
			IconWarning.Render(), len(res.Risks.Risks), res.Risks.OverallRisk))
	}
	b.WriteString("\n  " + Styles.Muted.Render(res.Reasoning) + "\n")
	b.WriteString("\n" + renderConfidence(res.Confidence))
	return b.String()
}

// RenderRoadmap formats a phased roadmap.
func RenderRoadmap(rm roadmap.Roadmap) string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("Roadmap") + "\n\n")
	b.WriteString(fmt.Sprintf("  %d sprint(s), roughly %d day(s)\n\n", rm.EstimatedSprints, rm.EstimatedDays))

	for _, phase := range rm.Phases {
		b.WriteString(Styles.Subtitle.Render(fmt.Sprintf("Phase %d", phase.Number)) +
			Styles.Muted.Render(fmt.Sprintf("  (%d points, wave %d)", phase.Points, phase.Wave)) + "\n")
		for _, item := range phase.Items {
			b.WriteString(fmt.Sprintf("  %s %s (%dpt) %s\n", IconBullet, item.ID, item.Points, Styles.Muted.Render(item.Title)))
		}
	}

	if len(rm.CriticalPath) > 0 {
		b.WriteString("\n" + Styles.Subtitle.Render("Critical path") + "\n")
		b.WriteString("  " + strings.Join(rm.CriticalPath, " → ") + "\n")
	}
	b.WriteString("\n" + renderConfidence(rm.Confidence))
	return b.String()
}

func renderConfidence(sc confidence.SectionConfidence) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  Confidence: %s (%s)\n",
		scoreStyle(sc.Score).Render(fmt.Sprintf("%d", sc.Score)), sc.Tier))
	if len(sc.ClarifyingQuestions) > 0 {
		for _, q := range sc.ClarifyingQuestions {
			b.WriteString("  " + Styles.Muted.Render("? "+q) + "\n")
		}
	}
	return b.String()
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return Styles.Success
	case score >= 50:
		return Styles.Warning
	default:
		return Styles.Error
	}
}

func levelStyle(l risk.Level) lipgloss.Style {
	switch l {
	case risk.LevelHigh:
		return Styles.Error
	case risk.LevelMedium:
		return Styles.Warning
	default:
		return Styles.Success
	}
}

func levelIcon(l risk.Level) Icon {
	switch l {
	case risk.LevelHigh:
		return IconError
	case risk.LevelMedium:
		return IconWarning
	default:
		return IconPending
	}
}
