package entity

// BatchFailure describe un miembro del ZIP que no pudo procesarse.
type BatchFailure struct {
	Member  string
	Message string
}

// BatchReport resume el procesamiento de un ZIP. No se persiste.
type BatchReport struct {
	BatchID   string
	Succeeded int
	Inserted  int
	Updated   int
	Skipped   int // documentos que no pertenecen a la empresa o sin Emisor/Receptor
	Failures  []BatchFailure
}

// AddFailure registra un fallo por ítem.
func (r *BatchReport) AddFailure(member, message string) {
	r.Failures = append(r.Failures, BatchFailure{Member: member, Message: message})
}
