package classifier

import (
	"regexp"
	"strings"

	"scheduling-assistant/internal/model"
	"scheduling-assistant/pkg/dateparse"
)

// Classifier categorizes inbound utterances via an ordered table of
// (predicate, kind) rules evaluated in fixed priority order.
type Classifier struct {
	extractor    *dateparse.Extractor
	pendingRules []rule
	idleRules    []rule
}

type rule struct {
	kind  Kind
	match func(c *Classifier, text string, cc Context) bool
}

// New creates a classifier sharing the extractor's token classes for
// adjustment detection.
func New(extractor *dateparse.Extractor) *Classifier {
	c := &Classifier{extractor: extractor}

	// Precedence with a proposal pending: confirmation > rejection >
	// greeting > adjustment > pipeline.
	c.pendingRules = []rule{
		{KindConfirmation, (*Classifier).isConfirmation},
		{KindRejection, (*Classifier).isRejection},
		{KindGreeting, (*Classifier).isGreeting},
		{KindAdjustment, (*Classifier).isAdjustment},
	}

	// Precedence with no proposal: greeting > bare create > plan >
	// topic-only > pipeline.
	c.idleRules = []rule{
		{KindGreeting, (*Classifier).isGreeting},
		{KindBareCreate, (*Classifier).isBareCreate},
		{KindPlanRequest, (*Classifier).isPlanRequest},
		{KindTopicOnly, (*Classifier).isTopicOnly},
	}

	return c
}

// Classify assigns a kind to text given the session context.
func (c *Classifier) Classify(text string, cc Context) Kind {
	rules := c.idleRules
	if cc.HasPendingProposal {
		rules = c.pendingRules
	}
	for _, r := range rules {
		if r.match(c, text, cc) {
			return r.kind
		}
	}
	return KindPipeline
}

// ---- vocabulary ----

var confirmationVocab = map[string]struct{}{
	"yes": {}, "y": {}, "yep": {}, "confirm": {}, "ok": {},
	"looks good": {}, "go ahead": {}, "do it": {}, "schedule it": {}, "proceed": {},
}

var rejectionVocab = map[string]struct{}{
	"no": {}, "n": {}, "nope": {}, "cancel": {}, "stop": {},
	"never mind": {}, "not now": {}, "reject": {},
}

var greetingPrefixes = []string{
	"hi", "hello", "hey", "yo", "howdy", "greetings",
	"good morning", "good afternoon", "good evening",
}

var planVocab = []string{
	"plan", "workout", "routine", "training", "exercise",
	"learn", "learning", "study plan", "course", "curriculum", "program",
}

var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	trailingPunctRe = regexp.MustCompile(`[.!?,;]+$`)
	bareCreateRe    = regexp.MustCompile(`^(please\s+)?(create|add|schedule)(\s+a)?(\s+new)?\s+task$`)
)

// normalize trims, lowercases and collapses internal whitespace.
func normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return whitespaceRe.ReplaceAllString(text, " ")
}

func (c *Classifier) isConfirmation(text string, _ Context) bool {
	n := normalize(text)
	if len(n) > 40 {
		return false
	}
	n = strings.TrimSpace(trailingPunctRe.ReplaceAllString(n, ""))
	n = strings.TrimSuffix(n, " please")
	_, ok := confirmationVocab[n]
	return ok
}

func (c *Classifier) isRejection(text string, _ Context) bool {
	n := normalize(text)
	if len(n) > 60 {
		return false
	}
	n = strings.TrimSpace(trailingPunctRe.ReplaceAllString(n, ""))
	n = strings.TrimSuffix(n, " it")
	_, ok := rejectionVocab[n]
	return ok
}

func (c *Classifier) isGreeting(text string, _ Context) bool {
	n := normalize(text)
	for _, p := range greetingPrefixes {
		if n == p || strings.HasPrefix(n, p+" ") || strings.HasPrefix(n, p+",") || strings.HasPrefix(n, p+"!") {
			return true
		}
	}
	return false
}

func (c *Classifier) isBareCreate(text string, _ Context) bool {
	n := strings.TrimSpace(trailingPunctRe.ReplaceAllString(normalize(text), ""))
	if len(strings.Fields(n)) > 4 {
		return false
	}
	return bareCreateRe.MatchString(n)
}

func (c *Classifier) isPlanRequest(text string, _ Context) bool {
	n := normalize(text)
	for _, kw := range planVocab {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}

// isTopicOnly: the user named a thing to do but no schedule.
func (c *Classifier) isTopicOnly(text string, cc Context) bool {
	n := normalize(text)
	if len(n) < 6 {
		return false
	}
	if c.isGreeting(text, cc) || c.isBareCreate(text, cc) || c.isPlanRequest(text, cc) {
		return false
	}
	return !c.extractor.HasDateToken(n) && !c.extractor.HasTimeToken(n)
}

// isAdjustment: only applicable against an existing task proposal; true
// when the text carries any recognizable date or time token, even if the
// extractor cannot fully resolve both fields.
func (c *Classifier) isAdjustment(text string, cc Context) bool {
	if !cc.PendingIsTask {
		return false
	}
	return c.extractor.HasDateToken(text) || c.extractor.HasTimeToken(text)
}

// DetectPriority scans for priority signals, defaulting to medium.
func DetectPriority(text string) model.Priority {
	n := normalize(text)
	for _, kw := range []string{"urgent", "asap", "high priority", "important"} {
		if strings.Contains(n, kw) {
			return model.PriorityHigh
		}
	}
	for _, kw := range []string{"low priority", "no rush", "whenever"} {
		if strings.Contains(n, kw) {
			return model.PriorityLow
		}
	}
	return model.PriorityMedium
}
