package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "snapshots/truck-7/01HX.jpg", SnapshotKey("truck-7", "01HX"))
	assert.Equal(t, "snapshots/a%2Fb/01HX.jpg", SnapshotKey("a/b", "01HX"))
}

func TestExtractKeyFromS3Url(t *testing.T) {
	assert.Equal(t, "snapshots/x/1.jpg", extractKeyFromS3Url("https://bucket.s3.amazonaws.com/snapshots/x/1.jpg"))
	assert.Equal(t, "snapshots/x/1.jpg", extractKeyFromS3Url("snapshots/x/1.jpg"))
}
