package schemas

import (
	"fmt"
	"strings"
)

// Weights applied to the four judgment criteria when computing totals.
const (
	weightQuestionQuality       = 0.40
	weightElencticEffectiveness = 0.25
	weightPhilosophicalInsight  = 0.20
	weightSocraticFidelity      = 0.15
)

// FormatTopic renders a TopicOutput as markdown.
func FormatTopic(out TopicOutput) string {
	lines := []string{
		fmt.Sprintf("## %s", out.Topic),
		"",
		out.Context,
		"",
		"**Key Concepts:**",
	}
	for _, concept := range out.KeyConcepts {
		lines = append(lines, fmt.Sprintf("- %s", concept))
	}
	return strings.Join(lines, "\n")
}

// FormatInquiry renders an InquiryOutput as markdown under the given title.
func FormatInquiry(out InquiryOutput, title, emoji string) string {
	lines := []string{
		fmt.Sprintf("## %s %s", emoji, title),
		"",
		fmt.Sprintf("**Philosophical Angle:** %s", out.PhilosophicalAngle),
		"",
		out.OpeningStatement,
		"",
		"---",
		"",
	}
	for i, q := range out.Questions {
		lines = append(lines,
			fmt.Sprintf("### Question %d", i+1),
			fmt.Sprintf("> %s", q.Question),
			"",
			fmt.Sprintf("*Purpose: %s*", q.Purpose),
			"",
		)
	}
	lines = append(lines,
		"---",
		"",
		fmt.Sprintf("**Insight:** %s", out.InsightSummary),
	)
	return strings.Join(lines, "\n")
}

// WeightedTotal converts an InquiryEvaluation to a 0-100 percentage using the
// criterion weights.
func WeightedTotal(eval InquiryEvaluation) float64 {
	weighted := float64(eval.QuestionQuality.Score)*weightQuestionQuality +
		float64(eval.ElencticEffectiveness.Score)*weightElencticEffectiveness +
		float64(eval.PhilosophicalInsight.Score)*weightPhilosophicalInsight +
		float64(eval.SocraticFidelity.Score)*weightSocraticFidelity
	return weighted / 5 * 100
}

func formatCriterion(name string, criterion CriterionScore) string {
	emoji := "❌"
	switch {
	case criterion.Score >= 4:
		emoji = "✅"
	case criterion.Score >= 3:
		emoji = "⚠️"
	}
	return fmt.Sprintf("- %s **%s** (%d/5): %s", emoji, name, criterion.Score, criterion.Assessment)
}

func formatEvaluationLines(eval InquiryEvaluation) []string {
	return []string{
		formatCriterion("Question Quality", eval.QuestionQuality),
		formatCriterion("Elenctic Effectiveness", eval.ElencticEffectiveness),
		formatCriterion("Philosophical Insight", eval.PhilosophicalInsight),
		formatCriterion("Socratic Fidelity", eval.SocraticFidelity),
	}
}

// FormatJudgment renders a JudgmentOutput as markdown with the scoring table.
func FormatJudgment(out JudgmentOutput) string {
	firstTotal := WeightedTotal(out.FirstInquiry)
	secondTotal := WeightedTotal(out.SecondInquiry) + float64(out.DifferentiationScore)

	lines := []string{
		"## Dialectic Evaluation",
		"",
		"### Scoring Breakdown",
		"",
		"| Criterion | First Inquiry | Second Inquiry |",
		"|-----------|--------------|----------------|",
		fmt.Sprintf("| **Question Quality** (40%%) | %d/5 | %d/5 |",
			out.FirstInquiry.QuestionQuality.Score, out.SecondInquiry.QuestionQuality.Score),
		fmt.Sprintf("| **Elenctic Effectiveness** (25%%) | %d/5 | %d/5 |",
			out.FirstInquiry.ElencticEffectiveness.Score, out.SecondInquiry.ElencticEffectiveness.Score),
		fmt.Sprintf("| **Philosophical Insight** (20%%) | %d/5 | %d/5 |",
			out.FirstInquiry.PhilosophicalInsight.Score, out.SecondInquiry.PhilosophicalInsight.Score),
		fmt.Sprintf("| **Socratic Fidelity** (15%%) | %d/5 | %d/5 |",
			out.FirstInquiry.SocraticFidelity.Score, out.SecondInquiry.SocraticFidelity.Score),
		fmt.Sprintf("| **Differentiation Quality** (bonus +10%%) | N/A | +%d%% |", out.DifferentiationScore),
		fmt.Sprintf("| **Total Score** | %.0f%% | %.0f%% |", firstTotal, secondTotal),
		"",
		"### Assessment",
		"",
		fmt.Sprintf("**Winner**: %s", out.Winner),
		"",
		fmt.Sprintf("**Differentiation**: %s", out.DifferentiationAssessment),
		"",
		fmt.Sprintf("**Socratic Exemplification**: %s", out.SocraticExemplification),
		"",
		"### Detailed Analysis",
		"",
		"**First Inquiry:**",
	}
	lines = append(lines, formatEvaluationLines(out.FirstInquiry)...)
	lines = append(lines, "", "**Second Inquiry:**")
	lines = append(lines, formatEvaluationLines(out.SecondInquiry)...)
	lines = append(lines,
		"",
		"### Recommendation",
		"",
		fmt.Sprintf("*%s*", out.Recommendation),
	)
	return strings.Join(lines, "\n")
}
