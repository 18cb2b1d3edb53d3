package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatheusOtenio/Pink-Note/internal/dto"
	"github.com/MatheusOtenio/Pink-Note/internal/entity"
	"github.com/MatheusOtenio/Pink-Note/internal/pkg/apperrors"
	"github.com/MatheusOtenio/Pink-Note/pkg/blobstore"
)

func TestAttachmentServiceAdd(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	note := env.mustCreateNote(t, "Report host", "", env.defaultFolder(t).Id)
	content := "%PDF-1.4 pretend there is a report here"

	added, err := env.attachments.Add(ctx, &dto.AddAttachmentRequest{
		NoteId:   note,
		FileName: "report.pdf",
	}, strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", added.FileName)
	assert.Equal(t, "document", added.Kind)

	shown, err := env.attachments.Show(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, note, shown.NoteId)
	assert.Equal(t, "pdf", shown.FileType)
	assert.Equal(t, "document", shown.Kind)
	assert.Equal(t, "application/pdf", shown.ContentType)
	assert.EqualValues(t, len(content), shown.SizeBytes)

	// The stored bytes survive the detour through content sniffing.
	reader, err := env.attachments.Open(ctx, added.Id)
	require.NoError(t, err)
	defer reader.Close()
	stored, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, string(stored))
}

func TestAttachmentServiceAddRejections(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.attachments.Add(ctx, &dto.AddAttachmentRequest{
		NoteId:   entity.NewNoteId(),
		FileName: "nowhere.txt",
	}, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, env.blobs.count(), "no bytes are stored for a missing note")

	note := env.mustCreateNote(t, "Host", "", env.defaultFolder(t).Id)
	_, err = env.attachments.Add(ctx, &dto.AddAttachmentRequest{NoteId: note}, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAttachmentServiceAddCompensatesFailedMetadata(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	note := env.mustCreateNote(t, "Host", "", env.defaultFolder(t).Id)
	require.NoError(t, env.db.Exec("DROP TABLE attachments").Error)

	_, err := env.attachments.Add(ctx, &dto.AddAttachmentRequest{
		NoteId:   note,
		FileName: "lost.txt",
	}, strings.NewReader("orphan bytes"))
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.Zero(t, env.blobs.count(), "bytes stored before the failed insert are removed again")
}

func TestAttachmentServiceAddFailsWhenBytesCannotBeStored(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	note := env.mustCreateNote(t, "Host", "", env.defaultFolder(t).Id)
	env.blobs.failSave = true

	_, err := env.attachments.Add(ctx, &dto.AddAttachmentRequest{
		NoteId:   note,
		FileName: "never.txt",
	}, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	listed, err := env.attachments.ListForNote(ctx, note)
	require.NoError(t, err)
	assert.Empty(t, listed, "no metadata row without stored bytes")
}

func TestAttachmentServiceListForNote(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	note := env.mustCreateNote(t, "Host", "", env.defaultFolder(t).Id)
	other := env.mustCreateNote(t, "Other", "", env.defaultFolder(t).Id)
	env.mustAddAttachment(t, note, "one.txt", "1")
	env.mustAddAttachment(t, note, "two.txt", "22")
	env.mustAddAttachment(t, other, "elsewhere.txt", "333")

	listed, err := env.attachments.ListForNote(ctx, note)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, attachment := range listed {
		assert.Equal(t, note, attachment.NoteId)
	}

	_, err = env.attachments.ListForNote(ctx, entity.NewNoteId())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAttachmentServiceRemove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	note := env.mustCreateNote(t, "Host", "", env.defaultFolder(t).Id)
	attachment := env.mustAddAttachment(t, note, "leaving.txt", "bye")

	require.NoError(t, env.attachments.Remove(ctx, attachment))

	_, err := env.attachments.Show(ctx, attachment)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, env.blobs.count())

	err = env.attachments.Remove(ctx, attachment)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The note itself is untouched.
	_, err = env.notes.Show(ctx, note)
	require.NoError(t, err)
}

func TestAttachmentServiceRemoveRollsBackWhenBytesRefuse(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	note := env.mustCreateNote(t, "Host", "", env.defaultFolder(t).Id)
	attachment := env.mustAddAttachment(t, note, "stuck.txt", "still here")

	env.blobs.failDelete = true
	err := env.attachments.Remove(ctx, attachment)
	assert.ErrorIs(t, err, apperrors.ErrStorage)

	// The row and the bytes both survive, so a retry can succeed.
	_, err = env.attachments.Show(ctx, attachment)
	require.NoError(t, err)
	assert.Equal(t, 1, env.blobs.count())

	env.blobs.failDelete = false
	require.NoError(t, env.attachments.Remove(ctx, attachment))
	assert.Zero(t, env.blobs.count())
}

func TestAttachmentServiceOpenMissingBytes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	note := env.mustCreateNote(t, "Host", "", env.defaultFolder(t).Id)
	attachment := env.mustAddAttachment(t, note, "vanished.txt", "poof")

	// Simulate bytes lost behind the metadata's back.
	env.blobs.objects = map[blobstore.Ref][]byte{}

	_, err := env.attachments.Open(ctx, attachment)
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}
