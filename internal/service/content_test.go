package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadContentMissingFileGivesDefaults(t *testing.T) {
	c, err := LoadContent(filepath.Join(t.TempDir(), "content.yaml"))
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultContent(), c); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadContentOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	yml := `
hero:
  subtitle: "My Sunshine"
slides:
  - image: media/a.jpg
    caption: first
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	c, err := LoadContent(path)
	require.NoError(t, err)

	want := DefaultContent()
	want.Hero.Subtitle = "My Sunshine"
	want.Slides = []Slide{{Image: "media/a.jpg", Caption: "first"}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadContentErrors(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("hero: [unclosed"), 0o644))
	_, err := LoadContent(broken)
	assert.Error(t, err)

	noImage := filepath.Join(dir, "noimage.yaml")
	require.NoError(t, os.WriteFile(noImage, []byte("slides:\n  - caption: lost\n"), 0o644))
	_, err = LoadContent(noImage)
	assert.ErrorContains(t, err, "slide 1")
}

func TestContentStoreSwap(t *testing.T) {
	first := &Snapshot{Content: DefaultContent(), Questions: DefaultQuizQuestions()}
	store := NewContentStore(first)
	assert.Same(t, first, store.Load())

	// Сессия держит свой срез, подмена снимка её не трогает
	session := NewQuizSession(1, store.Load().Questions, nil)

	second := &Snapshot{Content: DefaultContent(), Questions: DefaultQuizQuestions()[:2]}
	store.Swap(second)
	assert.Same(t, second, store.Load())
	assert.Equal(t, 5, session.Total())
}

func TestContentWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	contentPath := filepath.Join(dir, "content.yaml")
	questionsPath := filepath.Join(dir, "questions.txt")
	require.NoError(t, os.WriteFile(contentPath, []byte("hero:\n  title: Before\n"), 0o644))

	logger := zap.NewNop()
	snapshot, err := LoadSnapshot(contentPath, questionsPath, logger)
	require.NoError(t, err)
	store := NewContentStore(snapshot)
	require.Equal(t, "Before", store.Load().Content.Hero.Title)

	w, err := NewContentWatcher(store, contentPath, questionsPath, 20*time.Millisecond, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(contentPath, []byte("hero:\n  title: After\n"), 0o644))
	require.NoError(t, os.WriteFile(questionsPath, []byte(sampleQuestions), 0o644))

	assert.Eventually(t, func() bool {
		s := store.Load()
		return s.Content.Hero.Title == "After" && len(s.Questions) == 2
	}, 2*time.Second, 10*time.Millisecond)

	// Битый файл не должен ломать текущий снимок
	require.NoError(t, os.WriteFile(contentPath, []byte("hero: [unclosed"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "After", store.Load().Content.Hero.Title)

	// Битые вопросы тоже: остаются прежние, а не встроенные
	require.NoError(t, os.WriteFile(questionsPath, []byte(`"broken line with no fields`), 0o644))
	require.NoError(t, os.WriteFile(contentPath, []byte("hero:\n  title: Again\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	s := store.Load()
	assert.Equal(t, "After", s.Content.Hero.Title)
	require.Len(t, s.Questions, 2)
	assert.Equal(t, "What's our song?", s.Questions[0].Prompt)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestReloadSnapshotQuestions(t *testing.T) {
	dir := t.TempDir()
	contentPath := filepath.Join(dir, "content.yaml")
	questionsPath := filepath.Join(dir, "questions.txt")

	s, err := ReloadSnapshot(contentPath, questionsPath)
	require.NoError(t, err)
	assert.Len(t, s.Questions, len(DefaultQuizQuestions()))

	require.NoError(t, os.WriteFile(questionsPath, []byte("\"half saved\" 1 | A |"), 0o644))
	_, err = ReloadSnapshot(contentPath, questionsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	// При запуске тот же файл даёт вопросы по умолчанию
	s, err = LoadSnapshot(contentPath, questionsPath, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, s.Questions, len(DefaultQuizQuestions()))
}
