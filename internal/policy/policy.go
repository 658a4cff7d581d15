// Package policy decides whether an actor may perform an operation on a
// resource. It is pure: callers load the resource and pass its owner id.
package policy

import (
	"talenthub/internal/apperr"
	"talenthub/internal/models"
)

type Operation int

const (
	SearchJobs Operation = iota + 1
	ViewJob
	CreateJob
	ListOwnJobs
	ManageJob
	UpdateApplicationStatus
	SubmitApplication
	ListOwnApplications
	UpdateOwnProfile
)

var denyMessages = map[Operation]string{
	CreateJob:               "Only employers can create job postings",
	ListOwnJobs:             "Only employers can view their job postings",
	ManageJob:               "Only the employer who posted this job can modify it",
	UpdateApplicationStatus: "Only the employer who posted this job can update application status",
	SubmitApplication:       "Only job seekers can apply for jobs",
	ListOwnApplications:     "Only job seekers can view their applications",
	UpdateOwnProfile:        "Authentication required",
}

// Check returns nil when actor may perform op on a resource owned by ownerID,
// and an authorization error otherwise. ownerID is ignored by operations
// that do not target an owned resource.
func Check(actor *models.Actor, op Operation, ownerID string) error {
	switch op {
	case SearchJobs, ViewJob:
		return nil
	case UpdateOwnProfile:
		if actor != nil {
			return nil
		}
	case CreateJob, ListOwnJobs:
		if hasRole(actor, models.RoleEmployer) {
			return nil
		}
	case ManageJob, UpdateApplicationStatus:
		if hasRole(actor, models.RoleEmployer) && actor.ID == ownerID {
			return nil
		}
	case SubmitApplication, ListOwnApplications:
		if hasRole(actor, models.RoleJobseeker) {
			return nil
		}
	}
	return deny(op)
}

// Owns reports whether actor is the employer who owns job.
func Owns(actor *models.Actor, job *models.Job) bool {
	return actor != nil && job != nil && actor.ID != "" && actor.ID == job.EmployerID
}

// VisibleApplications narrows job's applications to what actor may see: all
// of them for the owning employer, at most the actor's own otherwise, and
// none for an anonymous caller.
func VisibleApplications(actor *models.Actor, job *models.Job) []models.Application {
	if Owns(actor, job) {
		return job.Applications
	}
	if actor == nil {
		return nil
	}
	if app, ok := job.ApplicationByApplicant(actor.ID); ok {
		return []models.Application{*app}
	}
	return nil
}

func hasRole(actor *models.Actor, role models.Role) bool {
	return actor != nil && actor.Role == role
}

func deny(op Operation) error {
	msg, ok := denyMessages[op]
	if !ok {
		msg = "You are not authorized to perform this action"
	}
	return apperr.Authorization(msg)
}
