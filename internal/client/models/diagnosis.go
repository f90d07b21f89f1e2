package models

// Diagnosis is the response of POST /plant-disease.
type Diagnosis struct {
	Disease            string   `json:"disease"`
	Plant              string   `json:"plant,omitempty"`
	TypeOfDisease      string   `json:"type_of_disease,omitempty"`
	PlantHealth        string   `json:"plant_health,omitempty"`
	LeafHealth         string   `json:"leaf_health,omitempty"`
	DiseaseSymptoms    []string `json:"disease_symptoms,omitempty"`
	TreatmentProcedure string   `json:"treatment_procedure,omitempty"`
	TreatmentRequired  bool     `json:"treatment_required"`
}
