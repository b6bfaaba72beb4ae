// Package domain defines core data models and interfaces shared across the app.
// It contains plain types, the collaborator contracts the key manager drives,
// and the error kinds every operation reports.
package domain
