package models

import "time"

// TrackingState - состояние контроллера трекинга
type TrackingState string

const (
	StateIdle                 TrackingState = "idle"
	StateRequestingPermission TrackingState = "requesting_permission"
	StateActive               TrackingState = "active"
)

// TrackingMode выбирает, как планировщик будит контроллер
type TrackingMode string

const (
	ModeForeground TrackingMode = "foreground"
	ModeBackground TrackingMode = "background"
)

// Permission - разрешение платформы, запрашиваемое перед стартом
type Permission string

const (
	PermissionFineLocation       Permission = "fine_location"
	PermissionCoarseLocation     Permission = "coarse_location"
	PermissionBackgroundLocation Permission = "background_location"
	PermissionNotifications      Permission = "notifications"
)

// PermissionOrder - порядок запроса разрешений
var PermissionOrder = []Permission{
	PermissionFineLocation,
	PermissionCoarseLocation,
	PermissionBackgroundLocation,
	PermissionNotifications,
}

// ScheduleConfig - параметры регистрации периодического пробуждения
type ScheduleConfig struct {
	MinimumInterval     time.Duration `json:"minimum_interval"`
	AllowOnBoot         bool          `json:"allow_on_boot"`
	StopOnTermination   bool          `json:"stop_on_termination"`
	RequiredNetworkType string        `json:"required_network_type"`
	RequiresCharging    bool          `json:"requires_charging"`
	Mode                TrackingMode  `json:"mode"`
}

// TrackingStatus - снимок состояния контроллера
type TrackingStatus struct {
	State      TrackingState   `json:"state"`
	Mode       TrackingMode    `json:"mode"`
	Interval   time.Duration   `json:"interval"`
	LastFix    *Fix            `json:"last_fix,omitempty"`
	LastSample *LocationSample `json:"last_sample,omitempty"`
	LastError  string          `json:"last_error,omitempty"`
}
