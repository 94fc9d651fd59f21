package content

// #region imports
import (
	"time"

	"github.com/soend5/coaching-engine/internal/assess"
	"github.com/soend5/coaching-engine/internal/tag"
)

// #endregion

// #region snapshot

// Snapshot is a persisted classification result. The engine computes,
// the host (this package) stores.
type Snapshot struct {
	ID              string
	CustomerID      string
	Mode            assess.Mode
	Archetype       tag.Archetype
	Stage           assess.Stage
	Stability       tag.Level // short mode only
	DimensionScores map[assess.Dimension]int
	Tags            []string
	CreatedAt       time.Time
}

// SnapshotFrom packages a classification for storage.
func SnapshotFrom(customerID string, mode assess.Mode, res assess.ClassificationResult) Snapshot {
	return Snapshot{
		CustomerID:      customerID,
		Mode:            mode,
		Archetype:       res.PrimaryArchetype,
		Stage:           res.Stage,
		Stability:       res.Stability,
		DimensionScores: res.DimensionScores,
		Tags:            res.Tags,
	}
}

// #endregion
