package instructions

import (
	"testing"

	"github.com/BartSte/bartste-prompts/internal/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_CommandSpecificWins(t *testing.T) {
	root := memRoot(t, "/instructions", map[string]string{
		"commands/fix/files.md": "specific",
		"default/files.md":      "default",
	})
	r := NewResolver(root)

	p, err := r.Find(command.Fix, "files.md")
	require.NoError(t, err)
	assert.Equal(t, "commands/fix/files.md", p.Name)
	assert.Equal(t, "/instructions/commands/fix/files.md", p.String())
	assert.Equal(t, "specific", Read(p))
}

func TestResolver_FallsBackToDefault(t *testing.T) {
	root := memRoot(t, "/instructions", map[string]string{
		"commands/fix/files.md": "specific",
		"default/files.md":      "default",
	})
	r := NewResolver(root)

	p, err := r.Find(command.Explain, "files.md")
	require.NoError(t, err)
	assert.Equal(t, "default/files.md", p.Name)
	assert.Equal(t, "default", Read(p))
}

func TestResolver_NestedSegments(t *testing.T) {
	root := memRoot(t, "/instructions", map[string]string{
		"default/edit/python.md": "py",
	})
	r := NewResolver(root)

	p, err := r.Find(command.Fix, "edit", "python.md")
	require.NoError(t, err)
	assert.Equal(t, "default/edit/python.md", p.Name)
}

func TestResolver_NotFound(t *testing.T) {
	root := memRoot(t, "/instructions", map[string]string{})
	r := NewResolver(root)

	p, err := r.Find(command.Fix, "files.md")
	require.Error(t, err)
	assert.True(t, p.IsZero())
	assert.True(t, IsNotFoundError(err))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{
		"/instructions/commands/fix/files.md",
		"/instructions/default/files.md",
	}, nf.Candidates)
	assert.Equal(t,
		"no instructions found in '/instructions/commands/fix/files.md' or '/instructions/default/files.md'",
		err.Error())
}

func TestResolver_SkipsDirectories(t *testing.T) {
	root := memRoot(t, "/instructions", map[string]string{
		"commands/fix/edit.md/": "",
		"default/edit.md":       "file",
	})
	r := NewResolver(root)

	p, err := r.Find(command.Fix, "edit.md")
	require.NoError(t, err)
	assert.Equal(t, "default/edit.md", p.Name)

	root = memRoot(t, "/only-dirs", map[string]string{
		"commands/fix/edit.md/": "",
		"default/edit.md/":      "",
	})
	_, err = NewResolver(root).Find(command.Fix, "edit.md")
	assert.True(t, IsNotFoundError(err))
}

func TestResolver_RootPriority(t *testing.T) {
	user := memRoot(t, "/user", map[string]string{
		"default/files.md": "user default",
	})
	builtin := memRoot(t, "/builtin", map[string]string{
		"commands/fix/files.md": "builtin specific",
		"default/files.md":      "builtin default",
	})
	r := NewResolver(user, builtin)

	p, err := r.Find(command.Fix, "files.md")
	require.NoError(t, err)
	assert.Equal(t, "user default", Read(p))
	assert.Equal(t, "/user", p.Root().Dir)

	p, err = r.Find(command.Explain, "userprompt.md")
	require.Error(t, err)
	assert.True(t, p.IsZero())

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Len(t, nf.Candidates, 4)
}

func TestResolver_Candidates(t *testing.T) {
	a := memRoot(t, "/a", nil)
	b := memRoot(t, "/b", nil)
	r := NewResolver(a, b)

	var got []string
	for _, c := range r.Candidates(command.Refactor, "edit", "go.md") {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{
		"/a/commands/refactor/edit/go.md",
		"/a/default/edit/go.md",
		"/b/commands/refactor/edit/go.md",
		"/b/default/edit/go.md",
	}, got)
	assert.Len(t, r.Roots(), 2)
}

func TestResolver_Lookup(t *testing.T) {
	root := memRoot(t, "/instructions", map[string]string{
		"default/files.md": "default",
	})
	r := NewResolver(root)

	assert.False(t, r.Lookup(command.Fix, "files.md").IsZero())

	for i := 0; i < 3; i++ {
		p := r.Lookup(command.Fix, "missing.md")
		assert.True(t, p.IsZero())
		assert.Equal(t, "", p.String())
		assert.Equal(t, "", Read(p))
	}
}

func TestIsNotFoundError_Wrapped(t *testing.T) {
	err := error(&NotFoundError{Candidates: []string{"a"}})
	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsNotFoundError(assert.AnError))
}
