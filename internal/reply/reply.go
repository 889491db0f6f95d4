// Package reply builds the Indonesian chat replies the bot sends.
package reply

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/catatuang/catatuang/internal/model"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount with id-ID digit grouping: "Rp 500.000".
func FormatRupiah(amount int64) string {
	return rupiahPrinter.Sprintf("Rp %d", amount)
}

// Welcome greets a brand-new sender with their generated credential. The
// plaintext password appears only here; it is never sent again.
func Welcome(displayLabel, username, password, dashboardURL string) string {
	return fmt.Sprintf(`🎉 *Selamat datang di Catat Uang, %s!*

Akun kamu sudah dibuat otomatis.

📱 *Login Dashboard:*
%s

👤 Username: %s
🔑 Password: %s

Ketik *bantuan* untuk melihat cara pakai.`, displayLabel, dashboardURL, username, password)
}

// Help is the static usage guide.
func Help() string {
	return `📖 *Panduan Catat Uang*

*Catat Pengeluaran:*
- 50000 makan siang
- 25rb kopi
- 1.5jt bayar listrik

*Catat Pemasukan:*
+ 5000000 gaji
+ 500rb freelance

*Cek Saldo:*
saldo

*Set Saldo Awal:*
saldo awal 1000000

*Reset Password:*
reset

💡 *Tips:* Gunakan rb (ribu), jt (juta), atau k untuk singkatan angka.`
}

// CredentialRotated confirms a password reset. The username and all
// transaction history stay as they were.
func CredentialRotated(username, password string) string {
	return fmt.Sprintf(`🔑 *Password kamu sudah direset!*

👤 Username: %s
🔑 Password baru: %s

Riwayat transaksi kamu tetap tersimpan.`, username, password)
}

// BalanceSummary reports the initial balance, the per-direction totals, and
// the computed current balance.
func BalanceSummary(summary model.BalanceSummary) string {
	return fmt.Sprintf(`📊 *Ringkasan Keuangan*

💰 Saldo awal: %s
📥 Total pemasukan: %s
📤 Total pengeluaran: %s

💵 *Saldo saat ini:* %s`,
		FormatRupiah(summary.InitialBalance),
		FormatRupiah(summary.TotalIncome),
		FormatRupiah(summary.TotalExpense),
		FormatRupiah(summary.Total()))
}

// BalanceUpdated confirms the new initial balance.
func BalanceUpdated(amount int64) string {
	return fmt.Sprintf("✅ Saldo awal diubah menjadi %s", FormatRupiah(amount))
}

// TransactionRecorded echoes a recorded transaction with a
// direction-specific emoji and label.
func TransactionRecorded(direction model.Direction, amount int64, description string) string {
	emoji, label := "💸", "Pengeluaran"
	if direction == model.DirectionIncome {
		emoji, label = "💵", "Pemasukan"
	}
	return fmt.Sprintf(`%s *%s tercatat!*

💰 %s
📝 %s`, emoji, label, FormatRupiah(amount), description)
}

// GenericError is the apology sent when a store operation fails. The
// transport layer sends it; the core only logs.
func GenericError() string {
	return "❌ Terjadi kesalahan. Silakan coba lagi."
}
