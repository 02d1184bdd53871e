package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seicast/seicast/internal/entities"
)

func TestSEIUUIDBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		uuid    string
		want    []byte
		wantErr error
	}{
		{
			name: "rfc 4122",
			uuid: "12345678-1234-1234-1234-1234567890ab",
			want: []byte{
				0x12, 0x34, 0x56, 0x78, 0x12, 0x34, 0x12, 0x34,
				0x12, 0x34, 0x12, 0x34, 0x56, 0x78, 0x90, 0xab,
			},
		},
		{
			name: "raw 16 byte tag",
			uuid: "METADATA\x00\x00\x00\x00\x00\x00\x00\x00",
			want: append([]byte("METADATA"), make([]byte, 8)...),
		},
		{
			name:    "too short",
			uuid:    "meta",
			wantErr: entities.ErrInvalidSEIUUID,
		},
		{
			name:    "too long",
			uuid:    "this tag is way longer than sixteen bytes",
			wantErr: entities.ErrInvalidSEIUUID,
		},
		{
			name:    "empty",
			uuid:    "",
			wantErr: entities.ErrInvalidSEIUUID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &entities.Config{SEIUUID: tt.uuid}
			got, err := c.SEIUUIDBytes()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tt.want, got[:])
		})
	}
}

func TestStreamInfoVideoStreams(t *testing.T) {
	t.Parallel()

	si := &entities.StreamInfo{Streams: []entities.Stream{
		{Codec: entities.H264, Type: entities.VideoType, Id: 256},
		{Codec: entities.AAC, Type: entities.AudioType, Id: 257},
	}}

	vs := si.VideoStreams()
	assert.Len(t, vs, 1)
	assert.Equal(t, entities.H264, vs[0].Codec)
}
