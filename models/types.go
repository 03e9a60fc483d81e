package models

import "time"

// Request types

type LoginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

// position_id -> candidate_id, one selection per position
type SubmitBallotRequest struct {
	StudentID  string            `json:"student_id"`
	Password   string            `json:"password"`
	Selections map[string]string `json:"selections"`
}

type CreateVoterRequest struct {
	StudentID   string `json:"student_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Program     string `json:"program"`
	YearOfStudy int    `json:"year_of_study"`
	Password    string `json:"password"`
	Active      *bool  `json:"active,omitempty"`
}

type CreatePositionRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	Active       *bool  `json:"active,omitempty"`
}

type CreateCandidateRequest struct {
	PositionID  string `json:"position_id"`
	Name        string `json:"name"`
	StudentID   string `json:"student_id"`
	Program     string `json:"program"`
	YearOfStudy int    `json:"year_of_study"`
	Active      *bool  `json:"active,omitempty"`
}

type CreateSettingRequest struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type CreateAdminUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Password string `json:"password"`
	Active   *bool  `json:"active,omitempty"`
}

// Response types

type LoginResponse struct {
	StudentID    string `json:"student_id"`
	FullName     string `json:"full_name"`
	AlreadyVoted bool   `json:"already_voted"`
	Message      string `json:"message"`
}

type SubmitBallotResponse struct {
	VotesCast int    `json:"votes_cast"`
	Message   string `json:"message"`
}

type AdminLoginResponse struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Domain types

type Voter struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	FullName    string    `json:"full_name"`
	Email       *string   `json:"email,omitempty"`
	Program     *string   `json:"program,omitempty"`
	YearOfStudy *int      `json:"year_of_study,omitempty"`
	HasVoted    bool      `json:"has_voted"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Position struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"display_order"`
	Active       bool    `json:"active"`
}

type Candidate struct {
	ID          string  `json:"id"`
	PositionID  string  `json:"position_id"`
	Name        string  `json:"name"`
	StudentID   *string `json:"student_id,omitempty"`
	Program     *string `json:"program,omitempty"`
	YearOfStudy *int    `json:"year_of_study,omitempty"`
	Active      bool    `json:"active"`
}

// PositionWithCandidates is one contest on the ballot screen.
type PositionWithCandidates struct {
	Position   Position    `json:"position"`
	Candidates []Candidate `json:"candidates"`
}

type VoteRecord struct {
	ID            string    `json:"id"`
	VoterID       string    `json:"voter_id"`
	StudentID     string    `json:"student_id"`
	PositionName  string    `json:"position_name"`
	CandidateName string    `json:"candidate_name"`
	CastAt        time.Time `json:"cast_at"`
	CastAgo       string    `json:"cast_ago"`
	OriginAddress *string   `json:"origin_address,omitempty"`
}

type Setting struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Value       string  `json:"value"`
	Description *string `json:"description,omitempty"`
}

type AdminUser struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Role     string  `json:"role"`
	Active   bool    `json:"active"`
}

// Dashboard types

type PositionTally struct {
	PositionID string `json:"position_id"`
	Name       string `json:"name"`
	Votes      int    `json:"votes"`
}

type DashboardResponse struct {
	RegisteredVoters int             `json:"registered_voters"`
	TotalCandidates  int             `json:"total_candidates"`
	VotesCast        int             `json:"votes_cast"`
	VotersTurnedOut  int             `json:"voters_turned_out"`
	TurnoutFraction  float64         `json:"turnout_fraction"`
	TurnoutPercent   string          `json:"turnout_percent"`
	Tally            []PositionTally `json:"tally"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
