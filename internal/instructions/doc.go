// Package instructions assembles prompts from markdown instruction files.
//
// # Layout
//
// An instruction root is a directory tree shaped like this:
//
//	commands/<command>/<fragment>.md              command specific
//	commands/<command>/<capability>/<filetype>.md
//	default/<fragment>.md                         fallback
//	default/<capability>/<filetype>.md
//
// Roots are consulted in priority order (configured directories, the user
// directory, then the tree compiled into the binary). Within one root the
// command specific directory wins over default/.
//
// # Resolution
//
// Find is the mandatory lookup and fails with *NotFoundError naming every
// candidate. Lookup is the optional variant and yields the zero Path, which
// Read turns into "".
//
// # Placeholders
//
// Instruction text may reference {command}, {files}, {filetype} and
// {userprompt}. Format substitutes them; when a referenced name has no value
// the whole fragment becomes "" so that instructions depending on optional
// context disappear instead of leaking placeholder syntax.
//
// # Assembly
//
// A Prompt has four fragments in a fixed order: files, command, filetype,
// userprompt. For a key the Assembler first tries <key>.md (formatted) and
// then <key>/<value>.md (verbatim). The filetype fragment is built from
// <capability>/<filetype>.md for every capability of the command, so a
// command without capabilities never gets filetype guidance.
package instructions
