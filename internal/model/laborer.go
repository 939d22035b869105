package model

import (
	"strings"
	"time"
)

// LaborStatus is a worker's availability
type LaborStatus string

const (
	StatusAvailable   LaborStatus = "Available"
	StatusScheduled   LaborStatus = "Scheduled"
	StatusUnavailable LaborStatus = "Unavailable"
)

func (s LaborStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusScheduled, StatusUnavailable:
		return true
	}
	return false
}

// LaborHistory is a past assignment. Populated by the server only.
type LaborHistory struct {
	ID        string `json:"id"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Notes     string `json:"notes"`
}

type Laborer struct {
	ID               string         `json:"id,omitempty"`
	Name             string         `json:"name"`
	Skill            string         `json:"skill"`
	AssignedLocation string         `json:"assignedLocation"`
	ScheduleStart    string         `json:"scheduleStart"`
	ScheduleEnd      string         `json:"scheduleEnd"`
	Status           LaborStatus    `json:"status"`
	History          []LaborHistory `json:"history,omitempty"`
	CreatedAt        string         `json:"created_at,omitempty"`
	UpdatedAt        string         `json:"updated_at,omitempty"`
}

// Scheduled reports whether both ends of the schedule are set
func (l Laborer) Scheduled() bool {
	return l.ScheduleStart != "" && l.ScheduleEnd != ""
}

// Validate runs the worker form checks
func (l *Laborer) Validate() error {
	l.Name = strings.TrimSpace(l.Name)
	l.Skill = strings.TrimSpace(l.Skill)
	if l.Name == "" || l.Skill == "" {
		return invalid("name", "Name and skill are required")
	}
	if l.Status == "" {
		l.Status = StatusAvailable
	}
	if !l.Status.Valid() {
		return invalid("status", "Unknown status "+string(l.Status))
	}

	var start, end time.Time
	var err error
	if l.ScheduleStart != "" {
		if start, err = time.Parse(time.DateOnly, l.ScheduleStart); err != nil {
			return invalid("scheduleStart", "Schedule start must be a YYYY-MM-DD date")
		}
	}
	if l.ScheduleEnd != "" {
		if end, err = time.Parse(time.DateOnly, l.ScheduleEnd); err != nil {
			return invalid("scheduleEnd", "Schedule end must be a YYYY-MM-DD date")
		}
	}
	if l.Scheduled() && end.Before(start) {
		return invalid("scheduleEnd", "Schedule end cannot be before its start")
	}
	return nil
}
