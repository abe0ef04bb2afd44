package dtm

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Magic はバイナリ形式の先頭4バイト
const Magic = "DTM\x1A"

// HeaderSize はシグネチャを含むバイナリヘッダのバイト数
const HeaderSize = 256

// 文字列フィールドの固定長
const (
	gameIDWidth       = 6
	authorWidth       = 32
	videoBackendWidth = 16
	secondDiscWidth   = 40
)

// Header はムービーのメタデータです。フィールドの並びはバイナリ形式の
// 配置順であり、テキスト形式のJSONのキー順でもあります。
type Header struct {
	GameID               string       `json:"game_id"`
	WiiGame              bool         `json:"wii_game"`
	Controllers          uint8        `json:"controllers"`
	Savestate            bool         `json:"savestate"`
	VICount              uint64       `json:"vi_count"`
	InputCount           uint64       `json:"input_count"`
	LagCounter           uint64       `json:"lag_counter"`
	Reserved1            uint64       `json:"reserved1"`
	RerecordCount        uint32       `json:"rerecord_count"`
	Author               string       `json:"author"`
	VideoBackend         string       `json:"video_backend"`
	AudioEmulator        Bytestring16 `json:"audio_emulator"`
	MD5                  Bytestring16 `json:"md5"`
	StartTime            uint64       `json:"start_time"`
	ValidConfig          bool         `json:"valid_config"`
	IdleSkipping         bool         `json:"idle_skipping"`
	DualCore             bool         `json:"dual_core"`
	ProgressiveScan      bool         `json:"progressive_scan"`
	DSPHLE               bool         `json:"dsp_hle"`
	FastDisc             bool         `json:"fast_disc"`
	CPUCore              uint8        `json:"cpu_core"`
	EFBAccess            bool         `json:"efb_access"`
	EFBCopy              bool         `json:"efb_copy"`
	EFBToTexture         bool         `json:"efb_to_texture"`
	EFBCopyCache         bool         `json:"efb_copy_cache"`
	EmulateFormatChanges bool         `json:"emulate_format_changes"`
	UseXFB               bool         `json:"use_xfb"`
	UseRealXFB           bool         `json:"use_real_xfb"`
	MemoryCards          uint8        `json:"memory_cards"`
	MemoryCardBlank      bool         `json:"memory_card_blank"`
	BongosPlugged        uint8        `json:"bongos_plugged"`
	SyncGPU              bool         `json:"sync_gpu"`
	Netplay              bool         `json:"netplay"`
	SysconfPAL60         bool         `json:"sysconf_pal60"`
	Reserved2            Bytestring12 `json:"reserved2"`
	SecondDisc           string       `json:"second_disc"`
	GitRevision          Bytestring20 `json:"git_revision"`
	DSPIROMHash          uint32       `json:"dsp_irom_hash"`
	DSPCoefHash          uint32       `json:"dsp_coef_hash"`
	TickCount            uint64       `json:"tick_count"`
	Reserved3            Bytestring11 `json:"reserved3"`
}

// rawHeader はシグネチャ直後のバイナリ配置そのものです (リトルエンディアン)
type rawHeader struct {
	GameID               [gameIDWidth]byte
	WiiGame              bool
	Controllers          uint8
	Savestate            bool
	VICount              uint64
	InputCount           uint64
	LagCounter           uint64
	Reserved1            uint64
	RerecordCount        uint32
	Author               [authorWidth]byte
	VideoBackend         [videoBackendWidth]byte
	AudioEmulator        [16]byte
	MD5                  [16]byte
	StartTime            uint64
	ValidConfig          bool
	IdleSkipping         bool
	DualCore             bool
	ProgressiveScan      bool
	DSPHLE               bool
	FastDisc             bool
	CPUCore              uint8
	EFBAccess            bool
	EFBCopy              bool
	EFBToTexture         bool
	EFBCopyCache         bool
	EmulateFormatChanges bool
	UseXFB               bool
	UseRealXFB           bool
	MemoryCards          uint8
	MemoryCardBlank      bool
	BongosPlugged        uint8
	SyncGPU              bool
	Netplay              bool
	SysconfPAL60         bool
	Reserved2            [12]byte
	SecondDisc           [secondDiscWidth]byte
	GitRevision          [20]byte
	DSPIROMHash          uint32
	DSPCoefHash          uint32
	TickCount            uint64
	Reserved3            [11]byte
}

// readHeader はシグネチャを検証してからヘッダを読み込みます
func readHeader(r io.Reader) (Header, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Header{}, err
	}
	if string(magic[:]) != Magic {
		return Header{}, &MagicError{Found: magic}
	}

	var raw rawHeader
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, err
	}

	h := Header{
		WiiGame:              raw.WiiGame,
		Controllers:          raw.Controllers,
		Savestate:            raw.Savestate,
		VICount:              raw.VICount,
		InputCount:           raw.InputCount,
		LagCounter:           raw.LagCounter,
		Reserved1:            raw.Reserved1,
		RerecordCount:        raw.RerecordCount,
		AudioEmulator:        raw.AudioEmulator,
		MD5:                  raw.MD5,
		StartTime:            raw.StartTime,
		ValidConfig:          raw.ValidConfig,
		IdleSkipping:         raw.IdleSkipping,
		DualCore:             raw.DualCore,
		ProgressiveScan:      raw.ProgressiveScan,
		DSPHLE:               raw.DSPHLE,
		FastDisc:             raw.FastDisc,
		CPUCore:              raw.CPUCore,
		EFBAccess:            raw.EFBAccess,
		EFBCopy:              raw.EFBCopy,
		EFBToTexture:         raw.EFBToTexture,
		EFBCopyCache:         raw.EFBCopyCache,
		EmulateFormatChanges: raw.EmulateFormatChanges,
		UseXFB:               raw.UseXFB,
		UseRealXFB:           raw.UseRealXFB,
		MemoryCards:          raw.MemoryCards,
		MemoryCardBlank:      raw.MemoryCardBlank,
		BongosPlugged:        raw.BongosPlugged,
		SyncGPU:              raw.SyncGPU,
		Netplay:              raw.Netplay,
		SysconfPAL60:         raw.SysconfPAL60,
		Reserved2:            raw.Reserved2,
		GitRevision:          raw.GitRevision,
		DSPIROMHash:          raw.DSPIROMHash,
		DSPCoefHash:          raw.DSPCoefHash,
		TickCount:            raw.TickCount,
		Reserved3:            raw.Reserved3,
	}

	var err error
	if h.GameID, err = readString("game_id", raw.GameID[:]); err != nil {
		return Header{}, err
	}
	if h.Author, err = readString("author", raw.Author[:]); err != nil {
		return Header{}, err
	}
	if h.VideoBackend, err = readString("video_backend", raw.VideoBackend[:]); err != nil {
		return Header{}, err
	}
	if h.SecondDisc, err = readString("second_disc", raw.SecondDisc[:]); err != nil {
		return Header{}, err
	}
	return h, nil
}

// writeHeader はシグネチャとヘッダを書き込みます
func writeHeader(w io.Writer, h *Header) error {
	raw := rawHeader{
		WiiGame:              h.WiiGame,
		Controllers:          h.Controllers,
		Savestate:            h.Savestate,
		VICount:              h.VICount,
		InputCount:           h.InputCount,
		LagCounter:           h.LagCounter,
		Reserved1:            h.Reserved1,
		RerecordCount:        h.RerecordCount,
		AudioEmulator:        h.AudioEmulator,
		MD5:                  h.MD5,
		StartTime:            h.StartTime,
		ValidConfig:          h.ValidConfig,
		IdleSkipping:         h.IdleSkipping,
		DualCore:             h.DualCore,
		ProgressiveScan:      h.ProgressiveScan,
		DSPHLE:               h.DSPHLE,
		FastDisc:             h.FastDisc,
		CPUCore:              h.CPUCore,
		EFBAccess:            h.EFBAccess,
		EFBCopy:              h.EFBCopy,
		EFBToTexture:         h.EFBToTexture,
		EFBCopyCache:         h.EFBCopyCache,
		EmulateFormatChanges: h.EmulateFormatChanges,
		UseXFB:               h.UseXFB,
		UseRealXFB:           h.UseRealXFB,
		MemoryCards:          h.MemoryCards,
		MemoryCardBlank:      h.MemoryCardBlank,
		BongosPlugged:        h.BongosPlugged,
		SyncGPU:              h.SyncGPU,
		Netplay:              h.Netplay,
		SysconfPAL60:         h.SysconfPAL60,
		Reserved2:            h.Reserved2,
		GitRevision:          h.GitRevision,
		DSPIROMHash:          h.DSPIROMHash,
		DSPCoefHash:          h.DSPCoefHash,
		TickCount:            h.TickCount,
		Reserved3:            h.Reserved3,
	}
	if err := putString("game_id", raw.GameID[:], h.GameID); err != nil {
		return err
	}
	if err := putString("author", raw.Author[:], h.Author); err != nil {
		return err
	}
	if err := putString("video_backend", raw.VideoBackend[:], h.VideoBackend); err != nil {
		return err
	}
	if err := putString("second_disc", raw.SecondDisc[:], h.SecondDisc); err != nil {
		return err
	}

	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, &raw)
}

// readString は末尾のゼロバイトを取り除き、UTF-8として検証します
func readString(field string, b []byte) (string, error) {
	s := string(bytes.TrimRight(b, "\x00"))
	if _, _, err := transform.String(encoding.UTF8Validator, s); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrInvalidText, field, err)
	}
	return s, nil
}

// putString は s を dst にコピーします。残りはゼロのままです。
// 末尾のゼロバイトは読み込み時に区別できないため受け付けません。
func putString(field string, dst []byte, s string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("%w: %s is %d bytes, max %d", ErrStringTooLong, field, len(s), len(dst))
	}
	if strings.HasSuffix(s, "\x00") {
		return fmt.Errorf("%w: %s ends with a NUL byte", ErrInvalidText, field)
	}
	copy(dst, s)
	return nil
}

// headerKeys はJSONオブジェクトに必要なキーの一覧です
var headerKeys = func() []string {
	b, _ := json.Marshal(Header{})
	var m map[string]json.RawMessage
	_ = json.Unmarshal(b, &m)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// unmarshalHeader はJSONオブジェクトを厳密に Header に変換します。
// 未知のキー、欠けているキー、null や型の合わない値、不正なUTF-8はいずれもエラーです。
func unmarshalHeader(data []byte) (Header, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return Header{}, fmt.Errorf("%w: header: %w", ErrInvalidText, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	// encoding/json はキーの大文字小文字を区別しないため、ここで完全一致を確かめる
	var unknown, null []string
	for k, v := range fields {
		if _, ok := slices.BinarySearch(headerKeys, k); !ok {
			unknown = append(unknown, k)
		} else if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			null = append(null, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Header{}, fmt.Errorf("%w: unknown field %s", ErrInvalidHeader, strings.Join(unknown, ", "))
	}
	if len(null) > 0 {
		sort.Strings(null)
		return Header{}, fmt.Errorf("%w: null value for %s", ErrInvalidHeader, strings.Join(null, ", "))
	}

	var missing []string
	for _, k := range headerKeys {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Header{}, fmt.Errorf("%w: missing field %s", ErrInvalidHeader, strings.Join(missing, ", "))
	}

	var h Header
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&h); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	return h, nil
}

// marshalHeader はヘッダを2スペースでインデントしたJSONに変換します。
// 手で編集するファイルなので & や < はエスケープしません。
func marshalHeader(h *Header) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(h); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
