package v1

import "github.com/shenikar/estate_tracker/internal/models"

// DTOToFix преобразует DTO фикса в доменную модель. Пустой timestamp заполнит источник.
func DTOToFix(dto PushFixRequest) models.Fix {
	fix := models.Fix{
		Latitude:  *dto.Latitude,
		Longitude: *dto.Longitude,
		Accuracy:  dto.Accuracy,
	}
	if dto.Timestamp != nil {
		fix.Timestamp = *dto.Timestamp
	}
	return fix
}

// ModelToFixResponse преобразует фикс в DTO для ответа
func ModelToFixResponse(fix models.Fix) *FixResponse {
	return &FixResponse{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Accuracy:  fix.Accuracy,
		Timestamp: fix.Timestamp,
	}
}

// ModelToSampleResponse преобразует сэмпл в DTO для ответа
func ModelToSampleResponse(model *models.LocationSample) *SampleResponse {
	return &SampleResponse{
		ID:         model.ID,
		Latitude:   model.Latitude,
		Longitude:  model.Longitude,
		Place:      model.Place,
		DayKey:     model.DayKey,
		CapturedAt: model.CapturedAt,
		RecordedAt: model.RecordedAt,
	}
}

// ModelsToSampleResponses преобразует слайс сэмплов в слайс DTO
func ModelsToSampleResponses(samples []*models.LocationSample) []*SampleResponse {
	responses := make([]*SampleResponse, len(samples))
	for i, sample := range samples {
		responses[i] = ModelToSampleResponse(sample)
	}
	return responses
}

// ModelToStatusResponse преобразует снимок состояния в DTO
func ModelToStatusResponse(status models.TrackingStatus) *StatusResponse {
	resp := &StatusResponse{
		State:           string(status.State),
		Mode:            string(status.Mode),
		IntervalSeconds: int64(status.Interval.Seconds()),
		LastError:       status.LastError,
	}
	if status.LastFix != nil {
		resp.LastFix = ModelToFixResponse(*status.LastFix)
	}
	if status.LastSample != nil {
		resp.LastSample = ModelToSampleResponse(status.LastSample)
	}
	return resp
}

// PermissionsToResponse преобразует выдачу разрешений в DTO
func PermissionsToResponse(granted map[models.Permission]bool) *PermissionsResponse {
	out := make(map[string]bool, len(granted))
	for k, v := range granted {
		out[string(k)] = v
	}
	return &PermissionsResponse{Granted: out}
}
