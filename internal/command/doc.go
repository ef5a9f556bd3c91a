// Package command defines the operations a prompt can be built for.
//
// Every Command carries a fixed capability set. The capability set decides
// which capability-specific instruction directories take part in prompt
// assembly. Today the only capability is Edit: commands that rewrite files
// (docstrings, fix, refactor, typehints, unittests) have it, while Explain
// has none and therefore never receives filetype-specific edit guidance.
//
// # Commands
//
//	docstrings  Add docstrings to files
//	explain     Explain code to the user
//	fix         Fix bugs in the code
//	refactor    Refactor code based on best practices
//	typehints   Add type hints to files
//	unittests   Generate thorough unit tests for files
//
// The set is closed: Parse rejects any other name.
package command
