package entity

import "time"

// StatusProcesso is the stage of a transport-contract process.
type StatusProcesso string

const (
	StatusAguardandoRasterMotorista    StatusProcesso = "AGUARDANDO_RASTER_MOTORISTA"
	StatusAguardandoRasterCaminhao     StatusProcesso = "AGUARDANDO_RASTER_CAMINHAO"
	StatusAguardandoAssinaturaContrato StatusProcesso = "AGUARDANDO_ASSINATURA_CONTRATO"
	StatusAguardandoCTE                StatusProcesso = "AGUARDANDO_CTE"
	StatusAguardandoManifesto          StatusProcesso = "AGUARDANDO_MANIFESTO"
	StatusAguardandoRNTRC              StatusProcesso = "AGUARDANDO_RNTRC"
	StatusAguardandoComprovante        StatusProcesso = "AGUARDANDO_COMPROVANTE"
	StatusFinalizado                   StatusProcesso = "FINALIZADO"
	StatusRejeitado                    StatusProcesso = "REJEITADO"
)

// Processo is one tracked transport-contract workflow, identified by its
// contract number.
type Processo struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Nome           string         `gorm:"not null" json:"nome"`
	NumeroContrato string         `gorm:"uniqueIndex;not null" json:"numero_contrato"`
	Status         StatusProcesso `gorm:"type:varchar(40);not null;default:'AGUARDANDO_RASTER_MOTORISTA'" json:"status"`
	CriadoEm       time.Time      `gorm:"autoCreateTime" json:"criado_em"`
	AtualizadoEm   time.Time      `gorm:"autoUpdateTime" json:"atualizado_em"`

	Arquivos             []Arquivo             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"arquivos,omitempty"`
	DocumentosAssinatura []DocumentoAssinatura `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"documentos_assinatura,omitempty"`
}

func (Processo) TableName() string {
	return "processos"
}
