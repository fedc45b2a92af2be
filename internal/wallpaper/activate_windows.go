//go:build windows

package wallpaper

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	msgSpawnWorkerW = 0x052C
	smtoNormal      = 0x0000

	gwlStyle   = -16
	gwlExStyle = -20

	wsChild       = 0x40000000
	wsPopup       = 0x80000000
	wsCaption     = 0x00C00000
	wsThickFrame  = 0x00040000
	wsSysMenu     = 0x00080000
	wsMinimizeBox = 0x00020000
	wsMaximizeBox = 0x00010000

	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000
	wsExNoActivate = 0x08000000

	hwndBottom      = 1
	swpNoActivate   = 0x0010
	swpFrameChanged = 0x0020
	swpShowWindow   = 0x0040
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procFindWindowW         = user32.NewProc("FindWindowW")
	procFindWindowExW       = user32.NewProc("FindWindowExW")
	procSendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
	procEnumWindows         = user32.NewProc("EnumWindows")
	procSetParent           = user32.NewProc("SetParent")
	procGetWindowLongW      = user32.NewProc("GetWindowLongW")
	procSetWindowLongW      = user32.NewProc("SetWindowLongW")
	procGetClientRect       = user32.NewProc("GetClientRect")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
)

// enumWindows callbacks are a limited resource, so one is shared and its
// result guarded.
var (
	enumMu      sync.Mutex
	enumWorkerW uintptr
	enumOnce    sync.Once
	enumProc    uintptr
)

func activate(title string) error {
	if err := user32.Load(); err != nil {
		return fmt.Errorf("load user32: %w", err)
	}
	hwnd := findWindow("", title)
	if hwnd == 0 {
		return fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}

	progman := findWindow("Progman", "")
	if progman == 0 {
		return fmt.Errorf("%w: Progman", ErrWindowNotFound)
	}
	// Asks Explorer to create the WorkerW that sits between the wallpaper
	// and the icons.
	var result uintptr
	procSendMessageTimeoutW.Call(progman, msgSpawnWorkerW, 0, 0, smtoNormal, 1000, uintptr(unsafe.Pointer(&result)))

	worker := findWorkerW()
	if worker == 0 {
		worker = findWindowEx(progman, 0, "WorkerW")
	}
	if worker == 0 {
		return fmt.Errorf("%w: WorkerW", ErrWindowNotFound)
	}

	style := getWindowLong(hwnd, gwlStyle)
	style &^= wsCaption | wsThickFrame | wsSysMenu | wsMinimizeBox | wsMaximizeBox | wsPopup
	style |= wsChild
	setWindowLong(hwnd, gwlStyle, style)

	ex := getWindowLong(hwnd, gwlExStyle)
	ex &^= wsExAppWindow
	ex |= wsExNoActivate | wsExToolWindow
	setWindowLong(hwnd, gwlExStyle, ex)

	if r, _, err := procSetParent.Call(hwnd, worker); r == 0 {
		return fmt.Errorf("reparent window: %w", err)
	}

	var rect windows.Rect
	procGetClientRect.Call(worker, uintptr(unsafe.Pointer(&rect)))
	r, _, err := procSetWindowPos.Call(hwnd, hwndBottom, 0, 0,
		uintptr(rect.Right-rect.Left), uintptr(rect.Bottom-rect.Top),
		swpNoActivate|swpFrameChanged|swpShowWindow)
	if r == 0 {
		return fmt.Errorf("position window: %w", err)
	}
	return nil
}

func findWorkerW() uintptr {
	enumOnce.Do(func() {
		enumProc = windows.NewCallback(func(hwnd, _ uintptr) uintptr {
			if findWindowEx(hwnd, 0, "SHELLDLL_DefView") != 0 {
				enumWorkerW = findWindowEx(0, hwnd, "WorkerW")
			}
			return 1
		})
	})
	enumMu.Lock()
	defer enumMu.Unlock()
	enumWorkerW = 0
	procEnumWindows.Call(enumProc, 0)
	return enumWorkerW
}

func utf16OrNil(s string) uintptr {
	if s == "" {
		return 0
	}
	p, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return 0
	}
	return uintptr(unsafe.Pointer(p))
}

func findWindow(class, title string) uintptr {
	r, _, _ := procFindWindowW.Call(utf16OrNil(class), utf16OrNil(title))
	return r
}

func findWindowEx(parent, after uintptr, class string) uintptr {
	r, _, _ := procFindWindowExW.Call(parent, after, utf16OrNil(class), 0)
	return r
}

func getWindowLong(hwnd uintptr, index int) uint32 {
	r, _, _ := procGetWindowLongW.Call(hwnd, uintptr(index))
	return uint32(r)
}

func setWindowLong(hwnd uintptr, index int, v uint32) {
	procSetWindowLongW.Call(hwnd, uintptr(index), uintptr(v))
}
