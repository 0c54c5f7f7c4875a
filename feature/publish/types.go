package publish

// ActionType represents the type of a publish action.
type ActionType string

const (
	// ActionUpload uploads a local file to the bucket.
	ActionUpload ActionType = "upload"
	// ActionDelete removes a stale object from the bucket.
	ActionDelete ActionType = "delete"
)

// Action represents a planned bucket mutation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the object key in the bucket.
	Key string `json:"key"`

	// Path is the file path relative to the serving root.
	Path string `json:"path"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Size is the local file size for uploads, the object size for deletes.
	Size int64 `json:"size"`
}

// Plan contains the actions that mirror the serving root into the bucket.
type Plan struct {
	// Bucket is the target bucket.
	Bucket string `json:"bucket"`

	// BucketExists is false when the bucket has to be created first.
	BucketExists bool `json:"bucket_exists"`

	// Actions contains planned uploads followed by planned deletes.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a publish plan.
type PlanSummary struct {
	// LocalFiles is the number of publishable files under the serving root.
	LocalFiles int `json:"local_files"`

	// RemoteObjects is the number of objects found under the prefix.
	RemoteObjects int `json:"remote_objects"`

	// Uploads counts planned uploads.
	Uploads int `json:"uploads"`

	// Deletes counts planned deletes.
	Deletes int `json:"deletes"`

	// UploadBytes is the total size of planned uploads.
	UploadBytes int64 `json:"upload_bytes"`
}

// Options controls publish behaviour.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Prune plans deletes for objects that no longer exist locally.
	Prune bool

	// Confirmed indicates the user accepted the plan.
	// If false, ApplyPlan does nothing regardless of DryRun.
	Confirmed bool
}

// Reasons attached to planned actions.
const (
	ReasonNew     = "not in bucket"
	ReasonChanged = "size differs"
	ReasonStale   = "not in serving root"
)
