package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeVariables(t *testing.T) {
	now := fixedClock()
	clock := func() time.Time { return now }

	doc, err := Load(nil, WithLogger(quietLogger()), WithClock(clock))
	require.NoError(t, err)
	ctx := NewContext(NewRecorder(), 100, 100, 1)
	doc.InitializeContext(ctx)

	s := doc.State()
	t.Run("publishes the wall clock", func(t *testing.T) {
		assert.Equal(t, float32(0), s.Float(IDTimeInSec))
		assert.Equal(t, float32(10*60+30), s.Float(IDTimeInMin))
		assert.Equal(t, float32(10), s.Float(IDTimeInHr))
		assert.Equal(t, float32(3), s.Float(IDCalendarMonth))
		assert.Equal(t, float32(15), s.Float(IDDayOfMonth))
		assert.Equal(t, float32(time.Friday), s.Float(IDWeekDay))
		assert.Equal(t, float32(0), s.Float(IDOffsetToUTC))
		assert.Equal(t, now.Unix(), s.Long(IDEpochSecond))
		assert.Equal(t, float32(0), s.Float(IDContinuousSec))
	})

	t.Run("advances animation time per frame", func(t *testing.T) {
		now = now.Add(1500 * time.Millisecond)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, float32(1.5), s.Float(IDAnimationTime))
		assert.Equal(t, float32(1.5), s.Float(IDAnimationDeltaTime))

		now = now.Add(500 * time.Millisecond)
		require.NoError(t, doc.Paint(ctx, ThemeUnspecified))
		assert.Equal(t, float32(2), s.Float(IDContinuousSec))
		assert.Equal(t, float32(0.5), s.Float(IDAnimationDeltaTime))
		assert.Equal(t, float32(2), s.Float(IDTimeInSec))
	})

	t.Run("restarts with initialization", func(t *testing.T) {
		doc.InitializeContext(ctx)
		assert.Equal(t, float32(0), s.Float(IDAnimationTime))
	})
}
