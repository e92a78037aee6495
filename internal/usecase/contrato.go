package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/deViniciusPedroza/automacao-contratos/internal/domain/entity"
)

const baseNamespace = "automacao-contratos"

// contratoPattern captures the contract number from the contract document's
// public_id. Anchored at the start; the ".pdf" suffix, when present, is
// ignored by the open end.
var contratoPattern = regexp.MustCompile(`^automacao-contratos/contratos/Contrato de Transporte - (\d+)`)

// numeroPattern pulls the contract number out of a document display name
// such as "Contrato de Transporte - 56765".
var numeroPattern = regexp.MustCompile(`(\d+)`)

func publicIDContrato(numero string) string {
	return fmt.Sprintf("%s/contratos/Contrato de Transporte - %s", baseNamespace, numero)
}

func publicIDComprovante(numero string) string {
	return fmt.Sprintf("%s/comprovantes/%s - comprovante", baseNamespace, numero)
}

func publicIDRNTRC(numero string) string {
	return fmt.Sprintf("%s/rntrc/%s - rntrc", baseNamespace, numero)
}

func publicIDRasterMotorista(numero string) string {
	return fmt.Sprintf("%s/raster/%s - raster_motorista", baseNamespace, numero)
}

func publicIDRasterVeiculo(numero string) string {
	return fmt.Sprintf("%s/raster/%s - raster_veiculo", baseNamespace, numero)
}

func publicIDManifesto(numero string) string {
	return fmt.Sprintf("%s/cte/%s - manifesto", baseNamespace, numero)
}

func publicIDCTE(numero string) string {
	return fmt.Sprintf("%s/cte/%s - cte", baseNamespace, numero)
}

// publicIDsObrigatorios lists every document the checklist requires for one
// contract.
func publicIDsObrigatorios(numero string) []string {
	return []string{
		publicIDContrato(numero),
		publicIDComprovante(numero),
		publicIDRNTRC(numero),
		publicIDRasterMotorista(numero),
		publicIDRasterVeiculo(numero),
		publicIDManifesto(numero),
		publicIDCTE(numero),
	}
}

// ordemAgrupamento is the business-defined concatenation sequence of the
// final contract package: contrato, manifesto, raster do motorista, raster
// do veículo, rntrc, comprovante, cte. It is neither alphabetical nor
// upload order and must not be reordered.
func ordemAgrupamento(numero string) []string {
	return []string{
		publicIDContrato(numero),
		publicIDManifesto(numero),
		publicIDRasterMotorista(numero),
		publicIDRasterVeiculo(numero),
		publicIDRNTRC(numero),
		publicIDComprovante(numero),
		publicIDCTE(numero),
	}
}

// semExtensao strips a trailing ".pdf" for comparison purposes. Exact,
// case-sensitive match only.
func semExtensao(publicID string) string {
	return strings.TrimSuffix(publicID, ".pdf")
}

// extrairNumeroContrato finds the contract document among the process files
// and returns its captured number, or "" when no file matches.
func extrairNumeroContrato(arquivos []entity.Arquivo) string {
	for _, arq := range arquivos {
		if m := contratoPattern.FindStringSubmatch(arq.PublicID); m != nil {
			return m[1]
		}
	}
	return ""
}

// numeroContratoDoNome extracts the contract number from a document display
// name, or "" when the name carries no digit run.
func numeroContratoDoNome(nome string) string {
	return numeroPattern.FindString(nome)
}
