package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Stats 统计两个文本之间新增与删除的字符数
func Stats(oldText, newText string) (added int, removed int) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += len([]rune(d.Text))
		case diffmatchpatch.DiffDelete:
			removed += len([]rune(d.Text))
		}
	}
	return added, removed
}

// Patch 生成从 oldText 到 newText 的补丁文本，可读性较 Pretty 差但可回放
func Patch(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	patches := dmp.PatchMake(oldText, newText)
	return dmp.PatchToText(patches)
}

// ApplyPatch 将补丁文本应用到 base，返回结果与是否全部成功
func ApplyPatch(base, patchText string) (string, bool) {
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patchText)
	if err != nil {
		return base, false
	}
	result, applied := dmp.PatchApply(patches, base)
	for _, ok := range applied {
		if !ok {
			return result, false
		}
	}
	return result, true
}
