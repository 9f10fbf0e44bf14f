// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Poll status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Answer status constants. Absence of an answer row means "unanswered",
// which is a distinct state and never stored.
const (
	AnswerOK         = "ok"
	AnswerMaybe      = "maybe"
	AnswerNG         = "ng"
	AnswerUnanswered = "unanswered"
)

// Scene classification constants
const (
	ScenePossible = "possible"
	SceneReach    = "reach"
	SceneBlocked  = "blocked"
)

// Request types

type CreateProjectRequest struct {
	Name string `json:"name"`
}

type AddMemberRequest struct {
	Name        string `json:"name"`
	DefaultRole string `json:"default_role"`
}

type UploadScriptRequest struct {
	Title    string               `json:"title"`
	Revision int                  `json:"revision"`
	Scenes   []UploadSceneRequest `json:"scenes"`
}

type UploadSceneRequest struct {
	Number  int                 `json:"number"`
	Heading string              `json:"heading"`
	Lines   []UploadLineRequest `json:"lines"`
}

// UploadLineRequest carries one dialogue line. Character is the character
// name as written in the script; an empty name marks a stage direction.
type UploadLineRequest struct {
	Character string `json:"character"`
	Text      string `json:"text"`
}

type AddCastingRequest struct {
	MemberID string `json:"member_id"`
}

type CreatePollRequest struct {
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	CreatorName   string                `json:"creator_name"`
	RequiredRoles []string              `json:"required_roles"`
	Candidates    []AddCandidateRequest `json:"candidates"`
}

type AddCandidateRequest struct {
	StartAt time.Time `json:"start_datetime"`
	EndAt   time.Time `json:"end_datetime"`
}

type SubmitAnswerRequest struct {
	CandidateID string `json:"candidate_id"`
	MemberID    string `json:"member_id"`
	Status      string `json:"status"`
}

type FinalizeRequest struct {
	CandidateID string   `json:"candidate_id"`
	SceneIDs    []string `json:"scene_ids"`
}

// Response types

type CreateProjectResponse struct {
	ProjectID string `json:"project_id"`
}

type AddMemberResponse struct {
	MemberID string `json:"member_id"`
}

type UploadScriptResponse struct {
	ScriptID     string            `json:"script_id"`
	SceneCount   int               `json:"scene_count"`
	CharacterIDs map[string]string `json:"character_ids"` // character name -> id
}

type CreatePollResponse struct {
	PollID       string   `json:"poll_id"`
	AdminKey     string   `json:"admin_key"`
	CandidateIDs []string `json:"candidate_ids"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type SubmitAnswerResponse struct {
	CandidateID string `json:"candidate_id"`
	MemberID    string `json:"member_id"`
	Status      string `json:"status"`
	Updated     bool   `json:"updated"`
}

type FinalizeResponse struct {
	RehearsalID string    `json:"rehearsal_id"`
	ClosedAt    time.Time `json:"closed_at"`
}

// Domain types

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Member struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	DefaultRole string    `json:"default_role"`
	CreatedAt   time.Time `json:"created_at"`
}

type Script struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Revision  int       `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
}

type Scene struct {
	ID       string `json:"id"`
	ScriptID string `json:"script_id"`
	Number   int    `json:"number"`
	Heading  string `json:"heading"`
	Lines    []Line `json:"lines,omitempty"`
}

// Line is one dialogue line. CharacterID is nil for stage directions.
type Line struct {
	SceneID     string  `json:"scene_id"`
	Ordinal     int     `json:"ordinal"`
	CharacterID *string `json:"character_id"`
	Text        string  `json:"text"`
}

type Character struct {
	ID       string `json:"id"`
	ScriptID string `json:"script_id"`
	Name     string `json:"name"`
}

// Casting assigns a performer to a character. Double casting (several
// performers on one character) and multi-role performers are both allowed.
type Casting struct {
	CharacterID string `json:"character_id"`
	MemberID    string `json:"member_id"`
}

type Poll struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CreatorName   string    `json:"creator_name"`
	RequiredRoles []string  `json:"required_roles"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type Candidate struct {
	ID      string    `json:"id"`
	PollID  string    `json:"poll_id"`
	StartAt time.Time `json:"start_datetime"`
	EndAt   time.Time `json:"end_datetime"`
}

type Answer struct {
	PollID      string    `json:"poll_id"`
	CandidateID string    `json:"candidate_id"`
	MemberID    string    `json:"member_id"`
	Status      string    `json:"status"`
	AnsweredAt  time.Time `json:"answered_at"`
}

type Rehearsal struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	PollID      string    `json:"poll_id"`
	CandidateID string    `json:"candidate_id"`
	StartAt     time.Time `json:"start_datetime"`
	EndAt       time.Time `json:"end_datetime"`
	SceneIDs    []string  `json:"scene_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// Analysis types (engine output)

// SceneRef identifies a scene in analysis output.
type SceneRef struct {
	SceneID string `json:"scene_id"`
	Number  int    `json:"scene_number"`
	Heading string `json:"scene_heading"`
}

// ReachScene is a scene exactly one unanswered confirmation away from
// rehearsable.
type ReachScene struct {
	SceneID          string   `json:"scene_id"`
	Number           int      `json:"scene_number"`
	Heading          string   `json:"heading"`
	MissingMemberIDs []string `json:"missing_participant_ids"`
	MissingNames     []string `json:"missing_user_names"`
}

// SlotAnalysis is the per-candidate engine result. When PollBlocked is set,
// PossibleScenes and ReachScenes are always empty.
type SlotAnalysis struct {
	CandidateID    string       `json:"candidate_id"`
	StartAt        time.Time    `json:"start_datetime"`
	EndAt          time.Time    `json:"end_datetime"`
	PollBlocked    bool         `json:"poll_blocked"`
	MissingRoles   []string     `json:"missing_roles,omitempty"`
	PossibleScenes []SceneRef   `json:"possible_scenes"`
	ReachScenes    []ReachScene `json:"reach_scenes"`
	AvailableIDs   []string     `json:"available_member_ids"`
	MaybeIDs       []string     `json:"maybe_member_ids"`
	AvailableNames []string     `json:"available_user_names"`
	MaybeNames     []string     `json:"maybe_user_names"`
	Warnings       []string     `json:"warnings,omitempty"`
}

// Recommendation is one ranked slot with its generated rationale.
type Recommendation struct {
	CandidateID    string     `json:"candidate_id"`
	StartAt        time.Time  `json:"start_datetime"`
	EndAt          time.Time  `json:"end_datetime"`
	PossibleScenes []SceneRef `json:"possible_scenes"`
	ReachCount     int        `json:"reach_count"`
	Reason         string     `json:"reason"`
}

// PollAggregate is the read projection the calendar/grid UI renders.
type PollAggregate struct {
	Poll       Poll           `json:"poll"`
	Candidates []Candidate    `json:"candidates"`
	Answers    []Answer       `json:"answers"`
	Analyses   []SlotAnalysis `json:"analyses"`
}

type CalendarResponse struct {
	Analyses []SlotAnalysis `json:"analyses"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
