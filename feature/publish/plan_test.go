package publish

import (
	"context"
	"errors"
	"testing"

	"moment-server/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const bucket = "moment"

func newRoot(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"/index.html":         "<html></html>",
		"/data/playlist.json": `{"name":"Demo","songs":["a"]}`,
		"/assets/audio/a.mp3": "ID3-audio",
		"/.env":               "STORAGE_SECRET_KEY=hunter2",
		"/.git/config":        "[core]",
		"/data/songs/a.json":  `{"id":"a"}`,
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return fsys
}

func keys(actions []Action, typ ActionType) []string {
	var out []string
	for _, a := range actions {
		if a.Type == typ {
			out = append(out, a.Key)
		}
	}
	return out
}

func TestBuildPlan(t *testing.T) {
	ctx := context.Background()
	fsys := newRoot(t)

	remote := func() <-chan minio.ObjectInfo {
		return mocks.Objects(
			minio.ObjectInfo{Key: "web/index.html", Size: int64(len("<html></html>"))},
			minio.ObjectInfo{Key: "web/data/playlist.json", Size: 3},
			minio.ObjectInfo{Key: "web/assets/audio/old.mp3", Size: 42},
			minio.ObjectInfo{Key: "web/assets/"},
		)
	}

	t.Run("Uploads New And Changed Files", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, bucket).Return(true, nil)
		client.On("ListObjects", ctx, bucket, minio.ListObjectsOptions{Prefix: "web/", Recursive: true}).Return(remote())

		plan, err := BuildPlan(ctx, fsys, client, bucket, "web", Options{})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"web/assets/audio/a.mp3",
			"web/data/playlist.json",
			"web/data/songs/a.json",
		}, keys(plan.Actions, ActionUpload))
		assert.Empty(t, keys(plan.Actions, ActionDelete))

		assert.Equal(t, 4, plan.Summary.LocalFiles)
		assert.Equal(t, 3, plan.Summary.RemoteObjects)
		assert.Equal(t, 3, plan.Summary.Uploads)
		assert.Equal(t, ReasonNew, plan.Actions[0].Reason)
		assert.Equal(t, ReasonChanged, plan.Actions[1].Reason)
		assert.Equal(t, "data/playlist.json", plan.Actions[1].Path)
		client.AssertExpectations(t)
	})

	t.Run("Prune Plans Deletes", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, bucket).Return(true, nil)
		client.On("ListObjects", ctx, bucket, mock.Anything).Return(remote())

		plan, err := BuildPlan(ctx, fsys, client, bucket, "web", Options{Prune: true})
		require.NoError(t, err)

		assert.Equal(t, []string{"web/assets/audio/old.mp3"}, keys(plan.Actions, ActionDelete))
		assert.Equal(t, 1, plan.Summary.Deletes)
		last := plan.Actions[len(plan.Actions)-1]
		assert.Equal(t, "assets/audio/old.mp3", last.Path)
		assert.Equal(t, ReasonStale, last.Reason)
	})

	t.Run("Hidden Files Are Skipped", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, bucket).Return(false, nil)

		plan, err := BuildPlan(ctx, fsys, client, bucket, "", Options{})
		require.NoError(t, err)

		for _, a := range plan.Actions {
			assert.NotContains(t, a.Key, ".env")
			assert.NotContains(t, a.Key, ".git")
		}
	})

	t.Run("Missing Bucket Uploads Everything", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, bucket).Return(false, nil)

		plan, err := BuildPlan(ctx, fsys, client, bucket, "", Options{Prune: true})
		require.NoError(t, err)

		assert.False(t, plan.BucketExists)
		assert.Equal(t, 4, plan.Summary.Uploads)
		assert.Zero(t, plan.Summary.Deletes)
		assert.Contains(t, keys(plan.Actions, ActionUpload), "index.html")
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket Check Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, bucket).Return(false, errors.New("connection refused"))

		_, err := BuildPlan(ctx, fsys, client, bucket, "", Options{})
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("List Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, bucket).Return(true, nil)
		client.On("ListObjects", ctx, bucket, mock.Anything).Return(mocks.Objects(
			minio.ObjectInfo{Err: errors.New("access denied")},
		))

		_, err := BuildPlan(ctx, fsys, client, bucket, "", Options{})
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestApplyPlan(t *testing.T) {
	ctx := context.Background()
	fsys := newRoot(t)

	plan := &Plan{
		Bucket:       bucket,
		BucketExists: false,
		Actions: []Action{
			{Type: ActionUpload, Key: "web/index.html", Path: "index.html", Size: 13},
			{Type: ActionUpload, Key: "web/data/playlist.json", Path: "data/playlist.json", Size: 29},
			{Type: ActionDelete, Key: "web/old.mp3", Path: "old.mp3"},
		},
		Summary: PlanSummary{Uploads: 2, Deletes: 1},
	}

	t.Run("Not Confirmed", func(t *testing.T) {
		client := new(mocks.Client)
		n, err := ApplyPlan(ctx, fsys, client, plan, Options{})
		require.NoError(t, err)
		assert.Zero(t, n)
		client.AssertExpectations(t)
	})

	t.Run("Dry Run", func(t *testing.T) {
		client := new(mocks.Client)
		n, err := ApplyPlan(ctx, fsys, client, plan, Options{DryRun: true, Confirmed: true})
		require.NoError(t, err)
		assert.Zero(t, n)
		client.AssertExpectations(t)
	})

	t.Run("Executes Actions", func(t *testing.T) {
		p := *plan
		client := new(mocks.Client)
		client.On("MakeBucket", ctx, bucket, minio.MakeBucketOptions{}).Return(nil)
		client.On("PutObject", ctx, bucket, "web/index.html", int64(13),
			mock.MatchedBy(func(o minio.PutObjectOptions) bool {
				return o.ContentType == "text/html; charset=utf-8"
			})).Return(minio.UploadInfo{}, nil)
		client.On("PutObject", ctx, bucket, "web/data/playlist.json", int64(29),
			mock.MatchedBy(func(o minio.PutObjectOptions) bool {
				return o.ContentType == "application/json"
			})).Return(minio.UploadInfo{}, nil)
		client.On("RemoveObject", ctx, bucket, "web/old.mp3", minio.RemoveObjectOptions{}).Return(nil)

		n, err := ApplyPlan(ctx, fsys, client, &p, Options{Confirmed: true})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.True(t, p.BucketExists)
		client.AssertExpectations(t)

		body, ok := client.Uploaded("web/data/playlist.json")
		require.True(t, ok)
		assert.JSONEq(t, `{"name":"Demo","songs":["a"]}`, string(body))
	})

	t.Run("Upload Error Stops", func(t *testing.T) {
		p := *plan
		p.BucketExists = true
		client := new(mocks.Client)
		client.On("PutObject", ctx, bucket, "web/index.html", mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("quota exceeded"))

		n, err := ApplyPlan(ctx, fsys, client, &p, Options{Confirmed: true})
		assert.ErrorContains(t, err, "quota exceeded")
		assert.Zero(t, n)
		client.AssertNotCalled(t, "RemoveObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/html; charset=utf-8", ContentType("index.html"))
	assert.Equal(t, "application/json", ContentType("data/playlist.json"))
	assert.Equal(t, "application/octet-stream", ContentType("LICENSE"))
}
