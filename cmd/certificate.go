package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"inspectra/internal/bootstrap"
	"inspectra/internal/bootstrap/logging"
	"inspectra/internal/errs"
	"inspectra/internal/usecase/compliance"
)

var certificateCmd = &cobra.Command{
	Use:   "certificate",
	Short: "Issue, revoke, and verify certificates",
}

var certificateIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a certificate for a completed inspection",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		inspection, _ := cmd.Flags().GetString("inspection")
		certificateType, _ := cmd.Flags().GetString("type")
		validityMonths, _ := cmd.Flags().GetInt("validity-months")
		remarks, _ := cmd.Flags().GetString("remarks")
		actor, _ := cmd.Flags().GetString("actor")

		certificate, err := svc.IssueCertificate(ctx, compliance.IssueCertificateInput{
			InspectionRef:   inspection,
			CertificateType: certificateType,
			ValidityMonths:  validityMonths,
			Remarks:         remarks,
			Actor:           actor,
		})
		if err != nil {
			logging.Error(ctx, "issue certificate failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "issue certificate")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "issued certificate: %s expires=%s\n",
			certificate.CertificateNumber, certificate.ExpiryDate); err != nil {
			return errs.Wrap(err, "write issue output")
		}
		return nil
	}),
}

var certificateRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Revoke a valid certificate",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		certificateNumber, _ := cmd.Flags().GetString("certificate")
		reason, _ := cmd.Flags().GetString("reason")
		actor, _ := cmd.Flags().GetString("actor")

		certificate, err := svc.RevokeCertificate(ctx, compliance.RevokeCertificateInput{
			CertificateNumber: certificateNumber,
			Reason:            reason,
			Actor:             actor,
		})
		if err != nil {
			logging.Error(ctx, "revoke certificate failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "revoke certificate")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "revoked certificate: %s\n", certificate.CertificateNumber); err != nil {
			return errs.Wrap(err, "write revoke output")
		}
		return nil
	}),
}

var certificateVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a certificate and derive its effective status",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		certificateNumber, _ := cmd.Flags().GetString("certificate")
		result, err := svc.VerifyCertificate(ctx, certificateNumber)
		if err != nil {
			logging.Error(ctx, "verify certificate failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "verify certificate")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "certificate %s: %s (issued=%s expires=%s type=%s)\n",
			result.Certificate.CertificateNumber, result.DerivedStatus,
			result.Certificate.IssueDate, result.Certificate.ExpiryDate,
			result.Certificate.CertificateType); err != nil {
			return errs.Wrap(err, "write verify output")
		}
		return nil
	}),
}

var certificateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an establishment's certificates",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		establishment, _ := cmd.Flags().GetString("establishment")
		certificates, err := svc.ListCertificates(ctx, establishment)
		if err != nil {
			logging.Error(ctx, "list certificates failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list certificates")
		}

		if len(certificates) == 0 {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no certificates"); err != nil {
				return errs.Wrap(err, "write list output")
			}
			return nil
		}
		for _, certificate := range certificates {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] type=%s issued=%s expires=%s\n",
				certificate.CertificateNumber, certificate.Status, certificate.CertificateType,
				certificate.IssueDate, certificate.ExpiryDate); err != nil {
				return errs.Wrap(err, "write list item")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(certificateCmd)
	certificateCmd.AddCommand(certificateIssueCmd)
	certificateCmd.AddCommand(certificateRevokeCmd)
	certificateCmd.AddCommand(certificateVerifyCmd)
	certificateCmd.AddCommand(certificateListCmd)

	certificateIssueCmd.Flags().String("inspection", "", "Inspection reference, for example HSI-2026-03-0042")
	certificateIssueCmd.Flags().String("type", "", "Certificate type, for example health_safety")
	certificateIssueCmd.Flags().Int("validity-months", 12, "Validity period in months")
	certificateIssueCmd.Flags().String("remarks", "", "Issuance remarks")
	certificateIssueCmd.Flags().String("actor", "", "Acting user")
	_ = certificateIssueCmd.MarkFlagRequired("inspection")
	_ = certificateIssueCmd.MarkFlagRequired("type")
	_ = certificateIssueCmd.MarkFlagRequired("actor")

	certificateRevokeCmd.Flags().String("certificate", "", "Certificate number, for example CERT-2026-000007")
	certificateRevokeCmd.Flags().String("reason", "", "Revocation reason")
	certificateRevokeCmd.Flags().String("actor", "", "Acting user")
	_ = certificateRevokeCmd.MarkFlagRequired("certificate")
	_ = certificateRevokeCmd.MarkFlagRequired("reason")
	_ = certificateRevokeCmd.MarkFlagRequired("actor")

	certificateVerifyCmd.Flags().String("certificate", "", "Certificate number, for example CERT-2026-000007")
	_ = certificateVerifyCmd.MarkFlagRequired("certificate")

	certificateListCmd.Flags().String("establishment", "", "Establishment reference, for example EST-2026-00012")
	_ = certificateListCmd.MarkFlagRequired("establishment")
}
