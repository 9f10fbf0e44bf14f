// Copyright (c) 2025 OptimisticPessimist.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, domain, and analysis types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateProjectRequest: name
  - AddMemberRequest: name, default_role
  - UploadScriptRequest: title, revision, scenes (with lines)
  - AddCastingRequest: member_id
  - CreatePollRequest: title, description, creator_name, required_roles, candidates
  - AddCandidateRequest: start_datetime, end_datetime
  - SubmitAnswerRequest: candidate_id, member_id, status
  - FinalizeRequest: candidate_id, scene_ids

# Response Types

Types for JSON responses:

  - CreateProjectResponse: project_id
  - AddMemberResponse: member_id
  - UploadScriptResponse: script_id, scene_count, character_ids
  - CreatePollResponse: poll_id, admin_key, candidate_ids
  - SubmitAnswerResponse: candidate_id, member_id, status, updated
  - FinalizeResponse: rehearsal_id, closed_at
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Project, Member: a production group and its performers/staff
  - Script, Scene, Line, Character, Casting: one script revision's
    scene → character → performer assignment graph
  - Poll, Candidate, Answer: an availability poll and its per-slot answers
  - Rehearsal: a finalized candidate slot

# Analysis Types

Engine output, serialized as-is:

  - SlotAnalysis: per-candidate scene classifications and availability
  - SceneRef, ReachScene: scene references inside an analysis
  - Recommendation: one ranked slot with its rationale
  - PollAggregate: poll + candidates + answers + analyses

# Constants

Poll status:

	StatusOpen   = "open"
	StatusClosed = "closed"

Answer status:

	AnswerOK         = "ok"
	AnswerMaybe      = "maybe"
	AnswerNG         = "ng"
	AnswerUnanswered = "unanswered"

Scene classification:

	ScenePossible = "possible"
	SceneReach    = "reach"
	SceneBlocked  = "blocked"
*/
package models
