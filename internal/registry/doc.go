// Package registry owns the in-memory collection of registered people.
//
// Manager is the single source of truth: it validates submissions, enforces
// email uniqueness, keeps insertion order and answers filtered views.
// Controller wires a Manager to a Display (the list, the counter, the form
// and the alert capability) so front ends only translate user input into
// Controller calls.
package registry
