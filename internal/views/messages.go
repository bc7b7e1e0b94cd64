package views

// User-facing messages. The UI is Japanese; keep them in one place so the
// handlers and templates agree.
const (
	MsgLoginFailed       = "ログインに失敗しました。"
	MsgPasswordMismatch  = "パスワードが一致しません！"
	MsgRegisterFailed    = "登録に失敗しました。"
	MsgRegisterSucceeded = "登録に成功しました！ログインしてください。"
	MsgAdminEntry        = "管理者ダッシュボードにアクセスするには、管理者アカウントでログインしてください。"

	MsgNoFileChosen   = "ファイルが選択されていません"
	MsgChooseFile     = "ファイルを選択してください。"
	MsgUploadBusy     = "処理中…"
	MsgUploadButton   = "アップロードして処理"
	MsgUploadSuccess  = "アップロード成功！"
	MsgUploadFailed   = "アップロードに失敗しました。"
	MsgFullscreenFail = "フルスクリーンにしようとしてエラーが発生しました"

	MsgRecentLoading = "最近のアクティビティを読み込んでいます…"
	MsgRecentEmpty   = "表示する最近のアクティビティはありません。"
	MsgTopItemsEmpty = "この期間に表示する項目はありません。"
	MsgWidgetFailed  = "データを取得できませんでした。"

	MsgReceiptsLoading   = "レシートを読み込み中…"
	MsgReceiptsEmpty     = "レシートが見つかりません。"
	MsgReceiptsFailed    = "レシートを取得できませんでした。"
	MsgConfirmDelete     = "この領収書を削除してもよろしいですか？この操作は元に戻せません。"
	MsgDeleteFailed      = "領収書を削除できませんでした。"
	MsgNothingToDownload = "ダウンロードするデータがありません。"

	MsgForbidden          = "このページを表示する権限がありません。"
	MsgUsersFailed        = "ユーザーを取得できませんでした。"
	MsgAdminReceiptsEmpty = "No receipts found for any user."
	MsgConfirmDeleteUser  = "このユーザーとそのすべてのデータを削除してもよろしいですか？この操作は元に戻せません。"
	MsgDeleteUserFailed   = "ユーザーの削除に失敗しました。"

	DeleteLabel          = "削除"
	CategoryDatasetLabel = "カテゴリ別支出"
	MonthlyDatasetLabel  = "月別支出"
)

var templateMessages = map[string]string{
	"NoFileChosen":      MsgNoFileChosen,
	"UploadButton":      MsgUploadButton,
	"UploadBusy":        MsgUploadBusy,
	"FullscreenFail":    MsgFullscreenFail,
	"RecentLoading":     MsgRecentLoading,
	"ReceiptsLoading":   MsgReceiptsLoading,
	"ConfirmDelete":     MsgConfirmDelete,
	"ConfirmDeleteUser": MsgConfirmDeleteUser,
	"DeleteFailed":      MsgDeleteFailed,
	"DeleteUserFailed":  MsgDeleteUserFailed,
	"NothingToDownload": MsgNothingToDownload,
	"Delete":            DeleteLabel,
}

// Message looks up a message by the short name templates use. Unknown names
// come back unchanged so a typo shows up on the page.
func Message(name string) string {
	if m, ok := templateMessages[name]; ok {
		return m
	}
	return name
}
