// Package action defines what happens to an assembled prompt: it is printed,
// emitted as a JSON record, or handed to an external coding assistant.
//
// The set of actions is closed. Each one is listed in a fixed table that
// maps its name to a constructor, and Create is the only way to obtain one.
package action
