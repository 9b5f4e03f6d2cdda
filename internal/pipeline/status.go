package pipeline

// Stage identifies one step of the analysis pipeline. Status text is
// derived from the stage tag rather than free-form strings so observers
// and tests see an enumerated value plus an optional detail.
type Stage int

const (
	StageIdle Stage = iota
	StageUploading
	StageConverting
	StageUploadingImage
	StagePersistingRecord
	StageScoring
	StagePersistingResult
	StageComplete
	StageAborted
)

var stageNames = map[Stage]string{
	StageIdle:             "idle",
	StageUploading:        "uploading",
	StageConverting:       "converting",
	StageUploadingImage:   "uploading_image",
	StagePersistingRecord: "persisting_record",
	StageScoring:          "scoring",
	StagePersistingResult: "persisting_result",
	StageComplete:         "complete",
	StageAborted:          "aborted",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Status is the observable progress of a run: the in-flight stage plus an
// optional human-readable detail.
type Status struct {
	Stage  Stage
	Detail string
}

// Abort reasons, fixed per stage.
const (
	ReasonUploadFailed      = "Failed to upload file"
	ReasonConvertFailed     = "Failed to convert document to image"
	ReasonImageUploadFailed = "Failed to upload image"
	ReasonScoreFailed       = "Failed to analyze resume"
	ReasonPersistFailed     = "Failed to save record"
)

func stageReason(stage Stage) string {
	switch stage {
	case StageUploading:
		return ReasonUploadFailed
	case StageConverting:
		return ReasonConvertFailed
	case StageUploadingImage:
		return ReasonImageUploadFailed
	case StageScoring:
		return ReasonScoreFailed
	default:
		return ReasonPersistFailed
	}
}
