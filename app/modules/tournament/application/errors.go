package tournamentservice

// User-facing denial messages for expected domain outcomes. Infrastructure
// faults never reach players; these do.
const (
	msgNotFound       = "tournament not found"
	msgNotActive      = "tournament is not active"
	msgDeadlinePassed = "the tournament deadline has passed"
	msgRollLimit      = "you have used all your rolls for this round"
	msgNoParticipants = "no rolls have been recorded this round"
	msgAlreadyOver    = "tournament is already over"
)
