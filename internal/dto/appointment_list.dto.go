package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	DiseaseType string    `json:"disease_type"`
	DoctorName  string    `json:"doctor_name"`
	PatientName string    `json:"patient_name"`
}
