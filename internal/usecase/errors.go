package usecase

import "errors"

// Sentinel errors the HTTP layer maps onto status codes.
var (
	// ErrNenhumArquivo: the processo has no documents at all (404).
	ErrNenhumArquivo = errors.New("nenhum arquivo encontrado para o processo")
	// ErrContratoNaoEncontrado: merge requires a contract document (400).
	ErrContratoNaoEncontrado = errors.New("arquivo de contrato não encontrado")
	// ErrArquivoObrigatorioAusente wraps the missing public_id (400).
	ErrArquivoObrigatorioAusente = errors.New("arquivo obrigatório ausente")
	// ErrMesclagemEmAndamento: another merge holds the contract lock (409).
	ErrMesclagemEmAndamento = errors.New("mesclagem já em andamento para este contrato")
	// ErrProcessoNaoEncontrado (404).
	ErrProcessoNaoEncontrado = errors.New("processo não encontrado")
	// ErrProcessoJaExiste: duplicate contract number at intake (400).
	ErrProcessoJaExiste = errors.New("processo já existe para este número de contrato")
	// ErrEtapaInvalida: upload folder outside the known set (400).
	ErrEtapaInvalida = errors.New("etapa inválida")
	// ErrEntradaInvalida wraps request-field validation failures (400).
	ErrEntradaInvalida = errors.New("entrada inválida")
)
