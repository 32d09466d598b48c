package insight

import (
	"fmt"
	"strings"

	"github.com/relcheck/relcheck/internal/questionbank"
	"github.com/relcheck/relcheck/internal/store"
)

const systemPrompt = `You help people reflect on a yes/no relationship health check-in. Be warm, direct and practical. You are not a therapist and must not diagnose anyone. Never minimize safety concerns.`

func buildUserMessage(rec store.AssessmentRecord) string {
	var b strings.Builder
	res := rec.Result

	fmt.Fprintf(&b, "Score: %d%% (%d of %d weighted points)\n", res.Percentage, res.Score, res.MaxScore)
	fmt.Fprintf(&b, "Assessment: %s\n", res.Recommendation.Title)
	fmt.Fprintf(&b, "Answered: %d questions, skipped: %d\n", rec.Answers.Answered(), rec.Answers.Skipped())

	writeFlags(&b, "Red flags", res.RedFlags)
	writeFlags(&b, "Green flags", res.GreenFlags)

	if notes := strings.TrimSpace(rec.Notes); notes != "" {
		fmt.Fprintf(&b, "\nPersonal notes:\n%s\n", notes)
	}

	b.WriteString(`
Instructions:
1. Summarize the overall picture in 2-4 sentences using the score and flags above.
2. List up to 4 strengths drawn from the green flags.
3. List up to 4 concerns drawn from the red flags, most serious first.
4. Suggest up to 4 small, concrete next steps. If any red flag involves safety, the first suggestion must be to reach out to a trusted person or professional.
5. Plain text only. No markdown.`)

	return b.String()
}

func writeFlags(b *strings.Builder, title string, qs []questionbank.Question) {
	fmt.Fprintf(b, "\n%s:\n", title)
	if len(qs) == 0 {
		b.WriteString("None\n")
		return
	}
	for _, q := range qs {
		marker := ""
		if q.Critical {
			marker = " [critical]"
		}
		fmt.Fprintf(b, "- (%s, weight %d)%s %s\n", q.Category, q.Weight, marker, q.Prompt)
	}
}
