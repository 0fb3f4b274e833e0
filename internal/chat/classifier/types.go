package classifier

// Kind is the category assigned to an inbound utterance.
type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindRejection    Kind = "rejection"
	KindGreeting     Kind = "greeting"
	KindBareCreate   Kind = "bare_create"   // "create a task" with no topic
	KindTopicOnly    Kind = "topic_only"    // a thing to do, no schedule
	KindPlanRequest  Kind = "plan_request"  // planning/learning/fitness vocabulary
	KindAdjustment   Kind = "adjustment"    // date/time change to a pending task proposal
	KindPipeline     Kind = "pipeline"      // needs the full pipeline
)

// Context describes the session state the classifier may condition on.
type Context struct {
	HasPendingProposal bool
	PendingIsTask      bool
}
