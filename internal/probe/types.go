package probe

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	NbStreams  int
	FormatName string
	Duration   float64
	Size       int64
	BitRate    int64
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index   int
	Codec   string
	PixFmt  string
	Width   int
	Height  int
	BitRate int64
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index         int
	Codec         string
	Channels      int
	ChannelLayout string
	SampleRate    int
	BitRate       int64
}

// Result is the fully parsed output of a single ffprobe JSON call.
type Result struct {
	Format       FormatInfo
	VideoStreams []VideoStream
	AudioStreams []AudioStream
}

// Duration returns the container duration in seconds (0 when unknown).
func (r *Result) Duration() float64 { return r.Format.Duration }

// HasAudio reports whether at least one audio stream is present.
func (r *Result) HasAudio() bool { return len(r.AudioStreams) > 0 }

// HasVideo reports whether at least one video stream is present.
func (r *Result) HasVideo() bool { return len(r.VideoStreams) > 0 }

// Resolution returns "WxH" for the first video stream, or "unknown".
func (r *Result) Resolution() string {
	if len(r.VideoStreams) == 0 {
		return "unknown"
	}
	v := r.VideoStreams[0]
	if v.Width <= 0 || v.Height <= 0 {
		return "unknown"
	}
	return itoa(v.Width) + "x" + itoa(v.Height)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
