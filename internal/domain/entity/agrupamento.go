package entity

// ResultadoVerificacao reports whether every required document for a
// contract is present. Ok is false both when the contract itself is missing
// (Motivo set, NumeroContrato empty) and when any required document is
// absent.
type ResultadoVerificacao struct {
	Ok                   bool            `json:"ok"`
	Motivo               string          `json:"motivo,omitempty"`
	NumeroContrato       string          `json:"numero_contrato,omitempty"`
	ArquivosObrigatorios map[string]bool `json:"arquivos_obrigatorios,omitempty"`
	ArquivosEncontrados  []string        `json:"arquivos_encontrados"`
}

// RemocaoArquivo is the per-file outcome of the post-merge cleanup of
// INDIVIDUAL documents.
type RemocaoArquivo struct {
	PublicID  string `json:"public_id"`
	Resultado string `json:"resultado"`
}

// ResultadoAgrupamento is the outcome of a successful merge: the stored
// FINAL artifact, the exact source order that was concatenated, and the
// cleanup report.
type ResultadoAgrupamento struct {
	NumeroContrato    string           `json:"numero_contrato"`
	PublicID          string           `json:"public_id"`
	URL               string           `json:"url"`
	ArquivosMesclados []string         `json:"arquivos_mesclados"`
	Limpeza           []RemocaoArquivo `json:"limpeza"`
}

// ResultadoSincronizacao lists the local records removed by the
// reconciliation sweep, per collaborator.
type ResultadoSincronizacao struct {
	RemovidosAutentique []uint `json:"removidos_autentique"`
	RemovidosCloudinary []uint `json:"removidos_cloudinary"`
}
