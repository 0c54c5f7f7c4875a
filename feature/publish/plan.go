package publish

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"moment-server/core/storage"
	"moment-server/core/utils"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/afero"
)

const defaultContentType = "application/octet-stream"

// BuildPlan compares the files in fsys with the objects stored under prefix
// in bucket. It does NOT execute actions; use ApplyPlan for that.
func BuildPlan(
	ctx context.Context,
	fsys afero.Fs,
	client storage.Client,
	bucket string,
	prefix string,
	opts Options,
) (*Plan, error) {
	local, err := listLocal(fsys)
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}

	remote := map[string]minio.ObjectInfo{}
	if exists {
		remote, err = listRemote(ctx, client, bucket, prefix)
		if err != nil {
			return nil, err
		}
	}

	plan := &Plan{
		Bucket:       bucket,
		BucketExists: exists,
		Actions:      []Action{},
	}
	plan.Summary.LocalFiles = len(local)
	plan.Summary.RemoteObjects = len(remote)

	for _, file := range local {
		key := utils.ObjectKey(prefix, file.path)
		obj, ok := remote[key]
		reason := ""
		switch {
		case !ok:
			reason = ReasonNew
		case obj.Size != file.size:
			reason = ReasonChanged
		default:
			continue
		}
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionUpload,
			Key:    key,
			Path:   file.path,
			Reason: reason,
			Size:   file.size,
		})
		plan.Summary.Uploads++
		plan.Summary.UploadBytes += file.size
	}

	if opts.Prune {
		seen := make(map[string]struct{}, len(local))
		for _, file := range local {
			seen[utils.ObjectKey(prefix, file.path)] = struct{}{}
		}

		keys := make([]string, 0, len(remote))
		for key := range remote {
			if _, ok := seen[key]; !ok {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)

		for _, key := range keys {
			rel, _ := utils.RelativeKey(prefix, key)
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionDelete,
				Key:    key,
				Path:   rel,
				Reason: ReasonStale,
				Size:   remote[key].Size,
			})
			plan.Summary.Deletes++
		}
	}

	return plan, nil
}

// ApplyPlan executes the actions in a publish plan.
// Returns the number of actions executed and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(
	ctx context.Context,
	fsys afero.Fs,
	client storage.Client,
	plan *Plan,
	opts Options,
) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	if !plan.BucketExists && plan.Summary.Uploads > 0 {
		if err := client.MakeBucket(ctx, plan.Bucket, minio.MakeBucketOptions{}); err != nil {
			return 0, fmt.Errorf("failed to create bucket %s: %w", plan.Bucket, err)
		}
		plan.BucketExists = true
	}

	for _, action := range plan.Actions {
		if err := ctx.Err(); err != nil {
			return executed, err
		}

		switch action.Type {
		case ActionUpload:
			if err := upload(ctx, fsys, client, plan.Bucket, action); err != nil {
				return executed, err
			}
		case ActionDelete:
			if err := client.RemoveObject(ctx, plan.Bucket, action.Key, minio.RemoveObjectOptions{}); err != nil {
				return executed, fmt.Errorf("failed to delete object %s: %w", action.Key, err)
			}
		default:
			return executed, fmt.Errorf("unknown action type %q", action.Type)
		}
		executed++
	}

	return executed, nil
}

// ContentType guesses the MIME type from the file extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(name))); ct != "" {
		return ct
	}
	return defaultContentType
}

func upload(ctx context.Context, fsys afero.Fs, client storage.Client, bucket string, action Action) error {
	f, err := fsys.Open("/" + action.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", action.Path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", action.Path, err)
	}

	_, err = client.PutObject(ctx, bucket, action.Key, f, info.Size(), minio.PutObjectOptions{
		ContentType: ContentType(action.Path),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", action.Key, err)
	}
	return nil
}

type localFile struct {
	path string
	size int64
}

// listLocal walks fsys from its root, skipping hidden entries.
func listLocal(fsys afero.Fs) ([]localFile, error) {
	var files []localFile
	err := afero.Walk(fsys, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimLeft(filepath.ToSlash(p), "/")
		if rel == "" {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, localFile{path: rel, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk serving root: %w", err)
	}
	return files, nil
}

func listRemote(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]minio.ObjectInfo, error) {
	opts := minio.ListObjectsOptions{Recursive: true}
	if p := utils.ObjectKey(prefix, ""); p != "" {
		opts.Prefix = p + "/"
	}

	objects := make(map[string]minio.ObjectInfo)
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", bucket, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if _, ok := utils.RelativeKey(prefix, obj.Key); !ok {
			continue
		}
		objects[obj.Key] = obj
	}
	return objects, nil
}
